package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/vinverse/gamerlink/internal/model"
)

type FollowRepository interface {
    // GetOrCreate 原子建边；created=false 表示边已存在（幂等重放）
    GetOrCreate(ctx context.Context, followerID, followeeID string) (*model.Follow, bool, error)
    Accept(ctx context.Context, followerID, followeeID string) error
    // Delete 返回是否真的删除了一条边
    Delete(ctx context.Context, followerID, followeeID string) (bool, error)
    Exists(ctx context.Context, followerID, followeeID string) (bool, error)
    ListFollowing(ctx context.Context, followerID string) ([]*model.Follow, error)
    ListFollowers(ctx context.Context, followeeID string) ([]*model.Follow, error)
    ListFollowingIDs(ctx context.Context, followerID string) ([]string, error)
    // ListFollowerIDs 分页拉取粉丝 ID，供通知扇出批量写
    ListFollowerIDs(ctx context.Context, followeeID string, offset, limit int) ([]string, error)
    CountFollowers(ctx context.Context, followeeID string) (int64, error)
    CountFollowing(ctx context.Context, followerID string) (int64, error)
}

type followRepository struct {
    db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) GetOrCreate(ctx context.Context, followerID, followeeID string) (*model.Follow, bool, error) {
    f := &model.Follow{ID: uuid.New().String(), FollowerID: followerID, FolloweeID: followeeID, Accepted: true}
    // 幂等：唯一键冲突时静默忽略，用 RowsAffected 区分新建与重放
    res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f)
    if res.Error != nil {
        return nil, false, res.Error
    }
    if res.RowsAffected > 0 {
        return f, true, nil
    }
    var existing model.Follow
    if err := r.db.WithContext(ctx).
        Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
        First(&existing).Error; err != nil {
        return nil, false, err
    }
    return &existing, false, nil
}

func (r *followRepository) Accept(ctx context.Context, followerID, followeeID string) error {
    return r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
        Update("accepted", true).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
    res := r.db.WithContext(ctx).
        Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
        Delete(&model.Follow{})
    return res.RowsAffected > 0, res.Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("follower_id = ? AND followee_id = ? AND accepted = ?", followerID, followeeID, true).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID string) ([]*model.Follow, error) {
    var res []*model.Follow
    err := r.db.WithContext(ctx).
        Where("follower_id = ? AND accepted = ?", followerID, true).
        Find(&res).Error
    return res, err
}

func (r *followRepository) ListFollowers(ctx context.Context, followeeID string) ([]*model.Follow, error) {
    var res []*model.Follow
    err := r.db.WithContext(ctx).
        Where("followee_id = ? AND accepted = ?", followeeID, true).
        Find(&res).Error
    return res, err
}

func (r *followRepository) ListFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("follower_id = ? AND accepted = ?", followerID, true).
        Pluck("followee_id", &ids).Error
    return ids, err
}

func (r *followRepository) ListFollowerIDs(ctx context.Context, followeeID string, offset, limit int) ([]string, error) {
    var ids []string
    err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("followee_id = ? AND accepted = ?", followeeID, true).
        Order("created_at").
        Offset(offset).Limit(limit).
        Pluck("follower_id", &ids).Error
    return ids, err
}

func (r *followRepository) CountFollowers(ctx context.Context, followeeID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("followee_id = ? AND accepted = ?", followeeID, true).
        Count(&cnt).Error
    return cnt, err
}

func (r *followRepository) CountFollowing(ctx context.Context, followerID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("follower_id = ? AND accepted = ?", followerID, true).
        Count(&cnt).Error
    return cnt, err
}
