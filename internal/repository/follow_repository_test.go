package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/model"
)

func setupFollowDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("u%04d", i)
		require.NoError(t, db.Create(&model.User{
			ID: id, Username: id, Email: id + "@example.com", Password: "p",
		}).Error)
		ids[i] = id
	}
	return ids
}

func TestGetOrCreateIdempotent(t *testing.T) {
	db := setupFollowDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	ids := seedUsers(t, db, 2)

	edge, created, err := repo.GetOrCreate(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.True(t, created)
	require.True(t, edge.Accepted)

	replay, created, err := repo.GetOrCreate(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, edge.ID, replay.ID)

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)

	// 反向是独立的边
	_, created, err = repo.GetOrCreate(ctx, ids[1], ids[0])
	require.NoError(t, err)
	require.True(t, created)
}

func TestDeleteReportsWhetherRemoved(t *testing.T) {
	db := setupFollowDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	ids := seedUsers(t, db, 2)

	_, _, err := repo.GetOrCreate(ctx, ids[0], ids[1])
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestCountsAndLists(t *testing.T) {
	db := setupFollowDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	ids := seedUsers(t, db, 5)

	// ids[1..4] 都关注 ids[0]；ids[0] 关注 ids[1]
	for _, id := range ids[1:] {
		_, _, err := repo.GetOrCreate(ctx, id, ids[0])
		require.NoError(t, err)
	}
	_, _, err := repo.GetOrCreate(ctx, ids[0], ids[1])
	require.NoError(t, err)

	followers, err := repo.CountFollowers(ctx, ids[0])
	require.NoError(t, err)
	require.EqualValues(t, 4, followers)

	following, err := repo.CountFollowing(ctx, ids[0])
	require.NoError(t, err)
	require.EqualValues(t, 1, following)

	exists, err := repo.Exists(ctx, ids[1], ids[0])
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(ctx, ids[0], ids[2])
	require.NoError(t, err)
	require.False(t, exists)

	followingIDs, err := repo.ListFollowingIDs(ctx, ids[0])
	require.NoError(t, err)
	require.Equal(t, []string{ids[1]}, followingIDs)
}

func TestListFollowerIDsPaged(t *testing.T) {
	db := setupFollowDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()
	ids := seedUsers(t, db, 8)

	for _, id := range ids[1:] {
		_, _, err := repo.GetOrCreate(ctx, id, ids[0])
		require.NoError(t, err)
	}

	collected := make(map[string]bool)
	for offset := 0; ; offset += 3 {
		page, err := repo.ListFollowerIDs(ctx, ids[0], offset, 3)
		require.NoError(t, err)
		for _, id := range page {
			require.False(t, collected[id], "duplicate across pages: %s", id)
			collected[id] = true
		}
		if len(page) < 3 {
			break
		}
	}
	require.Len(t, collected, 7)
}
