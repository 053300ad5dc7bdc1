package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

func setupFixture(t *testing.T) (*FollowerCache, *miniredis.Miniredis, repository.FollowRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	followRepo := repository.NewFollowRepository(db)
	return NewFollowerCache(rdb, followRepo, time.Minute), mr, followRepo, db
}

func seedFollowers(t *testing.T, db *gorm.DB, repo repository.FollowRepository, target string, n int) []string {
	t.Helper()
	require.NoError(t, db.Create(&model.User{ID: target, Username: target, Email: target + "@x.io", Password: "p"}).Error)
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("f%04d", i)
		require.NoError(t, db.Create(&model.User{ID: id, Username: id, Email: id + "@x.io", Password: "p"}).Error)
		_, _, err := repo.GetOrCreate(context.Background(), id, target)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

func TestPageLoadsAndCaches(t *testing.T) {
	fc, mr, repo, db := setupFixture(t)
	ctx := context.Background()
	fans := seedFollowers(t, db, repo, "star", 7)

	page, err := fc.Page(ctx, "star", 0, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)

	rest, err := fc.Page(ctx, "star", 5, 5)
	require.NoError(t, err)
	require.Len(t, rest, 2)

	// 全量无重复
	seen := make(map[string]bool)
	for _, id := range append(page, rest...) {
		require.False(t, seen[id])
		seen[id] = true
	}
	require.Len(t, seen, len(fans))

	// 首次加载后走 redis
	require.True(t, mr.Exists("followers:index:star"))
}

func TestPageBeyondEnd(t *testing.T) {
	fc, _, repo, db := setupFixture(t)
	seedFollowers(t, db, repo, "star", 3)

	page, err := fc.Page(context.Background(), "star", 10, 5)
	require.NoError(t, err)
	require.Empty(t, page)
}

func TestInvalidateForcesReload(t *testing.T) {
	fc, mr, repo, db := setupFixture(t)
	ctx := context.Background()
	seedFollowers(t, db, repo, "star", 2)

	_, err := fc.Page(ctx, "star", 0, 10)
	require.NoError(t, err)
	require.True(t, mr.Exists("followers:index:star"))

	// 新增粉丝后失效，下一次读能看到
	require.NoError(t, db.Create(&model.User{ID: "late", Username: "late", Email: "late@x.io", Password: "p"}).Error)
	_, _, err = repo.GetOrCreate(ctx, "late", "star")
	require.NoError(t, err)
	fc.Invalidate(ctx, "star")
	require.False(t, mr.Exists("followers:index:star"))

	page, err := fc.Page(ctx, "star", 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 3)
}

func TestNoFollowers(t *testing.T) {
	fc, _, _, db := setupFixture(t)
	require.NoError(t, db.Create(&model.User{ID: "lonely", Username: "lonely", Email: "l@x.io", Password: "p"}).Error)

	page, err := fc.Page(context.Background(), "lonely", 0, 10)
	require.NoError(t, err)
	require.Empty(t, page)
}
