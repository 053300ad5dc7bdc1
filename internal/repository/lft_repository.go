package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/model"
)

// LFTFilter 找队广告的列表过滤条件，空字段不参与过滤。
type LFTFilter struct {
	Game      string
	GameID    string
	Rank      string
	Region    string
	PlayStyle string
}

type LFTRepository interface {
	Create(ctx context.Context, post *model.LFTPost) error
	GetByID(ctx context.Context, id string) (*model.LFTPost, error)
	ListActive(ctx context.Context, filter LFTFilter) ([]*model.LFTPost, error)
	// ListCandidates 匹配候选池：活跃广告，排除请求者本人，可按游戏过滤
	ListCandidates(ctx context.Context, excludeAuthorID, game string) ([]*model.LFTPost, error)
	Deactivate(ctx context.Context, id string) error
}

type lftRepository struct {
	db *gorm.DB
}

func NewLFTRepository(db *gorm.DB) LFTRepository { return &lftRepository{db: db} }

func (r *lftRepository) Create(ctx context.Context, post *model.LFTPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *lftRepository) GetByID(ctx context.Context, id string) (*model.LFTPost, error) {
	var p model.LFTPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *lftRepository) ListActive(ctx context.Context, filter LFTFilter) ([]*model.LFTPost, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if filter.Game != "" {
		q = q.Where(`LOWER(game) LIKE ? ESCAPE '\'`, contains(filter.Game))
	}
	if filter.GameID != "" {
		q = q.Where(`LOWER(game_id) LIKE ? ESCAPE '\'`, contains(filter.GameID))
	}
	if filter.Rank != "" {
		q = q.Where(`LOWER(rank) LIKE ? ESCAPE '\'`, contains(filter.Rank))
	}
	if filter.Region != "" {
		q = q.Where(`LOWER(region) LIKE ? ESCAPE '\'`, contains(filter.Region))
	}
	if filter.PlayStyle != "" {
		q = q.Where("play_style = ?", filter.PlayStyle)
	}
	var posts []*model.LFTPost
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *lftRepository) ListCandidates(ctx context.Context, excludeAuthorID, game string) ([]*model.LFTPost, error) {
	q := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("author_id <> ?", excludeAuthorID)
	if game != "" {
		q = q.Where(`LOWER(game) LIKE ? ESCAPE '\'`, contains(game))
	}
	var posts []*model.LFTPost
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *lftRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.LFTPost{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// contains builds a case-insensitive LIKE pattern. 用户输入里的
// % _ \ 当字面量匹配，配套查询要带 ESCAPE '\'。
func contains(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
