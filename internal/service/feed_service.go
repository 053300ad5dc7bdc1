package service

import (
	"context"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

// feedLimit 单次 feed 上限，不做游标分页
const feedLimit = 100

// Feed 过滤模式
const (
	FeedAll       = "all"
	FeedFollowing = "following"
	FeedMine      = "my"
)

// FeedService feed 装配，纯读侧
type FeedService interface {
	Feed(ctx context.Context, viewerID, filter string) ([]PostView, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository, userRepo repository.UserRepository) FeedService {
	return &feedService{postRepo: postRepo, followRepo: followRepo, userRepo: userRepo}
}

func (s *feedService) Feed(ctx context.Context, viewerID, filter string) ([]PostView, error) {
	var authorIDs []string
	switch filter {
	case FeedMine:
		authorIDs = []string{viewerID}
	case FeedFollowing:
		ids, err := s.followRepo.ListFollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []PostView{}, nil
		}
		authorIDs = ids
	default:
		// 未知过滤值按 all 处理
		authorIDs = nil
	}

	posts, err := s.postRepo.ListNewest(ctx, authorIDs, feedLimit)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

// assemble 补全作者档案与互动计数
func (s *feedService) assemble(ctx context.Context, posts []*model.Post, viewerID string) ([]PostView, error) {
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	authorSet := make(map[string]struct{}, len(posts))
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		authorSet[p.AuthorID] = struct{}{}
		postIDs[i] = p.ID
	}
	authorIDs := make([]string, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := s.userRepo.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(authors))
	for _, u := range authors {
		byID[u.ID] = u
	}

	liked, err := s.postRepo.LikedSet(ctx, postIDs, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := byID[p.AuthorID]
		if !ok {
			continue
		}
		likeCnt, err := s.postRepo.CountLikes(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		commentCnt, err := s.postRepo.CountComments(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, PostView{
			ID:           p.ID,
			Author:       NewUserProfile(author),
			Content:      p.Content,
			LikeCount:    likeCnt,
			CommentCount: commentCnt,
			Liked:        liked[p.ID],
			CreatedAt:    p.CreatedAt,
		})
	}
	return views, nil
}
