package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/cache"
	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Follow{},
		&model.Post{}, &model.PostLike{}, &model.PostComment{},
		&model.Team{}, &model.TeamMember{},
		&model.LFTPost{}, &model.Notification{},
		&model.Room{}, &model.RoomMember{}, &model.Message{},
		&model.MatchInsight{},
	))
	return db
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	repo := repository.NewUserRepository(db)
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "p",
		Rank:     "Gold",
		GamerTag: username + "#EU",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func newFollowerCache(t *testing.T, db *gorm.DB) *cache.FollowerCache {
	t.Helper()
	return cache.NewFollowerCache(setupRedis(t), repository.NewFollowRepository(db), time.Minute)
}

func countNotifications(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Notification{}).Where("user_id = ?", userID).Count(&cnt).Error)
	return cnt
}
