package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vinverse/gamerlink/internal/cache"
	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
	"github.com/vinverse/gamerlink/pkg/logger"
)

// Notifier 通知扇出。所有方法都是主操作成功后的旁路写：
// 任何失败只记日志，绝不向调用方冒泡，也不回滚主操作。
type Notifier struct {
	notifRepo repository.NotificationRepository
	followers *cache.FollowerCache
	pageSize  int
}

func NewNotifier(notifRepo repository.NotificationRepository, followers *cache.FollowerCache) *Notifier {
	return &Notifier{notifRepo: notifRepo, followers: followers, pageSize: 500}
}

// FollowCreated 通知被关注者。同一 (接收者, follow, 关注者) 的未读
// 通知只保留一条，反复关注/取关不会刷屏。
func (n *Notifier) FollowCreated(ctx context.Context, follower *model.User, followeeID string) {
	if n == nil {
		return
	}
	_, err := n.notifRepo.CreateDeduped(ctx, &model.Notification{
		UserID:        followeeID,
		Type:          model.NotificationFollow,
		RelatedUserID: follower.ID,
		Title:         "New Follower",
		Message:       fmt.Sprintf("%s started following you", follower.Username),
		RelatedURL:    "/profile/" + follower.ID,
	})
	if err != nil {
		logger.Warn("follow notification failed",
			zap.String("followee", followeeID), zap.Error(err))
	}
}

// PostCreated 给作者的所有粉丝各写一条通知。粉丝 ID 分页拉取，
// 每页批量落库，不保证整批原子。
func (n *Notifier) PostCreated(ctx context.Context, author *model.User, post *model.Post) {
	if n == nil {
		return
	}
	msg := fmt.Sprintf("%s posted: %s...", author.Username, truncate(post.Content, 50))
	for offset := 0; ; offset += n.pageSize {
		ids, err := n.followers.Page(ctx, author.ID, offset, n.pageSize)
		if err != nil {
			logger.Warn("post fanout aborted",
				zap.String("author", author.ID), zap.Int("offset", offset), zap.Error(err))
			return
		}
		if len(ids) == 0 {
			return
		}
		batch := make([]model.Notification, 0, len(ids))
		for _, id := range ids {
			batch = append(batch, model.Notification{
				UserID:        id,
				Type:          model.NotificationPost,
				RelatedUserID: author.ID,
				Title:         "New Post",
				Message:       msg,
				RelatedURL:    "/feed",
			})
		}
		if err := n.notifRepo.CreateBatch(ctx, batch); err != nil {
			logger.Warn("post fanout batch failed",
				zap.String("author", author.ID), zap.Int("size", len(batch)), zap.Error(err))
		}
		if len(ids) < n.pageSize {
			return
		}
	}
}

// LikeCreated 通知作者；自己赞自己的内容不产生通知。
func (n *Notifier) LikeCreated(ctx context.Context, liker *model.User, post *model.Post) {
	if n == nil || post.AuthorID == liker.ID {
		return
	}
	err := n.notifRepo.Create(ctx, &model.Notification{
		UserID:        post.AuthorID,
		Type:          model.NotificationLike,
		RelatedUserID: liker.ID,
		Title:         "Post Liked",
		Message:       fmt.Sprintf("%s liked your post", liker.Username),
		RelatedURL:    "/feed",
	})
	if err != nil {
		logger.Warn("like notification failed",
			zap.String("post", post.ID), zap.Error(err))
	}
}

// CommentCreated 通知作者；自己评论自己的内容不产生通知。
func (n *Notifier) CommentCreated(ctx context.Context, commenter *model.User, post *model.Post) {
	if n == nil || post.AuthorID == commenter.ID {
		return
	}
	err := n.notifRepo.Create(ctx, &model.Notification{
		UserID:        post.AuthorID,
		Type:          model.NotificationComment,
		RelatedUserID: commenter.ID,
		Title:         "New Comment",
		Message:       fmt.Sprintf("%s commented on your post", commenter.Username),
		RelatedURL:    "/feed",
	})
	if err != nil {
		logger.Warn("comment notification failed",
			zap.String("post", post.ID), zap.Error(err))
	}
}

// truncate 按 rune 截断，不把多字节字符劈成半截
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
