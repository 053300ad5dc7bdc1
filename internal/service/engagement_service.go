package service

import (
	"context"
	"strings"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

// LikeResult liked 恒为 true（幂等），Created 表示本次调用新建了点赞
type LikeResult struct {
	Liked   bool
	Created bool
}

// EngagementService 发帖与互动（点赞、评论）
type EngagementService interface {
	CreatePost(ctx context.Context, authorID, content string) (*model.Post, error)
	Like(ctx context.Context, postID, userID string) (*LikeResult, error)
	Unlike(ctx context.Context, postID, userID string) error
	AddComment(ctx context.Context, postID, authorID, content string) (*CommentView, error)
	ListComments(ctx context.Context, postID string) ([]CommentView, error)
}

type engagementService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier *Notifier
}

func NewEngagementService(postRepo repository.PostRepository, userRepo repository.UserRepository, notifier *Notifier) EngagementService {
	return &engagementService{postRepo: postRepo, userRepo: userRepo, notifier: notifier}
}

func (s *engagementService) CreatePost(ctx context.Context, authorID, content string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}
	post := &model.Post{AuthorID: authorID, Content: content}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	// 粉丝扇出，旁路
	s.notifier.PostCreated(ctx, author, post)
	return post, nil
}

func (s *engagementService) Like(ctx context.Context, postID, userID string) (*LikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, asNotFound(err, "post")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}
	created, err := s.postRepo.GetOrCreateLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if created {
		s.notifier.LikeCreated(ctx, user, post)
	}
	return &LikeResult{Liked: true, Created: created}, nil
}

func (s *engagementService) Unlike(ctx context.Context, postID, userID string) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return asNotFound(err, "post")
	}
	// 不存在也算成功
	return s.postRepo.DeleteLike(ctx, postID, userID)
}

func (s *engagementService) AddComment(ctx context.Context, postID, authorID, content string) (*CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, asNotFound(err, "post")
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, asNotFound(err, "user")
	}
	comment := &model.PostComment{PostID: postID, AuthorID: authorID, Content: content}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.notifier.CommentCreated(ctx, author, post)
	return &CommentView{
		ID:        comment.ID,
		Author:    NewUserProfile(author),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *engagementService) ListComments(ctx context.Context, postID string) ([]CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, asNotFound(err, "post")
	}
	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	authors, err := s.userRepo.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(authors))
	for _, u := range authors {
		byID[u.ID] = u
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		author, ok := byID[c.AuthorID]
		if !ok {
			continue
		}
		views = append(views, CommentView{
			ID:        c.ID,
			Author:    NewUserProfile(author),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return views, nil
}
