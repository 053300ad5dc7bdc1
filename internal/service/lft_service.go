package service

import (
	"context"
	"strings"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

// LFTService 找队广告读写
type LFTService interface {
	Create(ctx context.Context, authorID string, post *model.LFTPost) (*model.LFTPost, error)
	List(ctx context.Context, filter repository.LFTFilter) ([]LFTView, error)
	Deactivate(ctx context.Context, authorID, id string) error
}

type lftService struct {
	lftRepo  repository.LFTRepository
	userRepo repository.UserRepository
}

func NewLFTService(lftRepo repository.LFTRepository, userRepo repository.UserRepository) LFTService {
	return &lftService{lftRepo: lftRepo, userRepo: userRepo}
}

func (s *lftService) Create(ctx context.Context, authorID string, post *model.LFTPost) (*model.LFTPost, error) {
	if strings.TrimSpace(post.Game) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, asNotFound(err, "user")
	}
	post.AuthorID = authorID
	post.Active = true
	if err := s.lftRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *lftService) List(ctx context.Context, filter repository.LFTFilter) ([]LFTView, error) {
	posts, err := s.lftRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	authorIDs := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}
	authors, err := s.userRepo.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	views := make([]LFTView, 0, len(posts))
	for _, p := range posts {
		author, ok := byID[p.AuthorID]
		if !ok {
			continue
		}
		views = append(views, LFTView{
			ID:        p.ID,
			Author:    NewUserProfile(author),
			Game:      p.Game,
			Rank:      p.Rank,
			Region:    p.Region,
			PlayStyle: p.PlayStyle,
			Message:   p.Message,
		})
	}
	return views, nil
}

func (s *lftService) Deactivate(ctx context.Context, authorID, id string) error {
	post, err := s.lftRepo.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "lft post")
	}
	if post.AuthorID != authorID {
		return ErrAccessDenied
	}
	return s.lftRepo.Deactivate(ctx, id)
}
