package service

import (
    "context"
    "errors"
    "fmt"

    "gorm.io/gorm"

    "github.com/vinverse/gamerlink/internal/cache"
    "github.com/vinverse/gamerlink/internal/model"
    "github.com/vinverse/gamerlink/internal/repository"
)

// FollowResult 区分首次建边与幂等重放
type FollowResult struct {
    Edge    *model.Follow
    Created bool
}

// ConnectionsView 关注/粉丝总览，公开可读
type ConnectionsView struct {
    User        UserProfile   `json:"user"`
    Followers   []UserProfile `json:"followers"`
    Following   []UserProfile `json:"following"`
    FollowerCnt int64         `json:"followers_count"`
    FollowingCnt int64        `json:"following_count"`
    IsFollowing bool          `json:"is_following"`
}

// RelationshipService 关系链服务
type RelationshipService interface {
    Follow(ctx context.Context, fromUserID, toUserID string) (*FollowResult, error)
    Unfollow(ctx context.Context, fromUserID, toUserID string) error
    // Connections viewerID 为空表示匿名读，不计算 is_following
    Connections(ctx context.Context, userID, viewerID string) (*ConnectionsView, error)
}

type relationshipService struct {
    followRepo repository.FollowRepository
    userRepo   repository.UserRepository
    followers  *cache.FollowerCache
    notifier   *Notifier
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository, followers *cache.FollowerCache, notifier *Notifier) RelationshipService {
    return &relationshipService{followRepo: followRepo, userRepo: userRepo, followers: followers, notifier: notifier}
}

func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID string) (*FollowResult, error) {
    if fromUserID == toUserID {
        return nil, ErrFollowSelf
    }
    from, err := s.userRepo.GetByID(ctx, fromUserID)
    if err != nil {
        return nil, asNotFound(err, "user")
    }
    if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
        return nil, asNotFound(err, "user")
    }

    edge, created, err := s.followRepo.GetOrCreate(ctx, fromUserID, toUserID)
    if err != nil {
        return nil, err
    }
    if !created && !edge.Accepted {
        // 旧的待确认边直接转为已接受，按重放处理，不发通知
        if err := s.followRepo.Accept(ctx, fromUserID, toUserID); err != nil {
            return nil, err
        }
        edge.Accepted = true
    }
    if created {
        if s.followers != nil {
            s.followers.Invalidate(ctx, toUserID)
        }
        // 扇出失败不回滚主操作
        s.notifier.FollowCreated(ctx, from, toUserID)
    }
    return &FollowResult{Edge: edge, Created: created}, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) error {
    deleted, err := s.followRepo.Delete(ctx, fromUserID, toUserID)
    if err != nil {
        return err
    }
    if !deleted {
        return fmt.Errorf("%w: follow edge", ErrNotFound)
    }
    if s.followers != nil {
        s.followers.Invalidate(ctx, toUserID)
    }
    return nil
}

func (s *relationshipService) Connections(ctx context.Context, userID, viewerID string) (*ConnectionsView, error) {
    user, err := s.userRepo.GetByID(ctx, userID)
    if err != nil {
        return nil, asNotFound(err, "user")
    }

    followerEdges, err := s.followRepo.ListFollowers(ctx, userID)
    if err != nil {
        return nil, err
    }
    followingEdges, err := s.followRepo.ListFollowing(ctx, userID)
    if err != nil {
        return nil, err
    }

    followerIDs := make([]string, len(followerEdges))
    for i, e := range followerEdges {
        followerIDs[i] = e.FollowerID
    }
    followingIDs := make([]string, len(followingEdges))
    for i, e := range followingEdges {
        followingIDs[i] = e.FolloweeID
    }

    followers, err := s.profiles(ctx, followerIDs)
    if err != nil {
        return nil, err
    }
    following, err := s.profiles(ctx, followingIDs)
    if err != nil {
        return nil, err
    }

    // 计数直接数边，不依赖档案列表的长度
    followerCnt, err := s.followRepo.CountFollowers(ctx, userID)
    if err != nil {
        return nil, err
    }
    followingCnt, err := s.followRepo.CountFollowing(ctx, userID)
    if err != nil {
        return nil, err
    }

    isFollowing := false
    if viewerID != "" && viewerID != userID {
        isFollowing, err = s.followRepo.Exists(ctx, viewerID, userID)
        if err != nil {
            return nil, err
        }
    }

    return &ConnectionsView{
        User:         NewUserProfile(user),
        Followers:    followers,
        Following:    following,
        FollowerCnt:  followerCnt,
        FollowingCnt: followingCnt,
        IsFollowing:  isFollowing,
    }, nil
}

func (s *relationshipService) profiles(ctx context.Context, ids []string) ([]UserProfile, error) {
    users, err := s.userRepo.ListByIDs(ctx, ids)
    if err != nil {
        return nil, err
    }
    res := make([]UserProfile, len(users))
    for i, u := range users {
        res[i] = NewUserProfile(u)
    }
    return res, nil
}

// asNotFound 把 gorm 的未命中翻译成服务层 ErrNotFound
func asNotFound(err error, what string) error {
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return fmt.Errorf("%w: %s", ErrNotFound, what)
    }
    return err
}
