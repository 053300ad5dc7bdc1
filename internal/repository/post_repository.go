package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vinverse/gamerlink/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// ListNewest 按创建时间倒序，上限 limit；authorIDs 为空表示不过滤作者
	ListNewest(ctx context.Context, authorIDs []string, limit int) ([]*model.Post, error)

	// GetOrCreateLike 幂等点赞；created 用于通知判定
	GetOrCreateLike(ctx context.Context, postID, userID string) (bool, error)
	DeleteLike(ctx context.Context, postID, userID string) error
	LikeExists(ctx context.Context, postID, userID string) (bool, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
	// LikedSet 返回 userID 点过赞的 postIDs 子集，feed 装配用
	LikedSet(ctx context.Context, postIDs []string, userID string) (map[string]bool, error)

	CreateComment(ctx context.Context, comment *model.PostComment) error
	ListComments(ctx context.Context, postID string) ([]*model.PostComment, error)
	CountComments(ctx context.Context, postID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListNewest(ctx context.Context, authorIDs []string, limit int) ([]*model.Post, error) {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if authorIDs != nil {
		q = q.Where("author_id IN ?", authorIDs)
	}
	var posts []*model.Post
	err := q.Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetOrCreateLike(ctx context.Context, postID, userID string) (bool, error) {
	like := &model.PostLike{ID: uuid.New().String(), PostID: postID, UserID: userID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) DeleteLike(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{}).Error
}

func (r *postRepository) LikeExists(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *postRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) LikedSet(ctx context.Context, postIDs []string, userID string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id IN ? AND user_id = ?", postIDs, userID).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *model.PostComment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID string) ([]*model.PostComment, error) {
	var comments []*model.PostComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (r *postRepository) CountComments(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.PostComment{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}
