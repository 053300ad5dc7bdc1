package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/model"
)

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func TestCreateAssignsVinSequence(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := &model.User{Username: "a", Email: "a@x.io", Password: "p"}
	require.NoError(t, repo.Create(ctx, a))
	require.Equal(t, "VIN-0000001", a.VinID)

	b := &model.User{Username: "b", Email: "b@x.io", Password: "p"}
	require.NoError(t, repo.Create(ctx, b))
	require.Equal(t, "VIN-0000002", b.VinID)

	// 显式给定的 VinID 不被覆盖
	c := &model.User{Username: "c", Email: "c@x.io", Password: "p", VinID: "VIN-0000100"}
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, "VIN-0000100", c.VinID)

	// 序列从最大号继续
	d := &model.User{Username: "d", Email: "d@x.io", Password: "p"}
	require.NoError(t, repo.Create(ctx, d))
	require.Equal(t, "VIN-0000101", d.VinID)
}

func TestGetAndExists(t *testing.T) {
	db := setupUserDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "alice", Email: "alice@x.io", Password: "p"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	ok, err := repo.Exists(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(ctx, "nope")
	require.NoError(t, err)
	require.False(t, ok)

	list, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPasswordHashing(t *testing.T) {
	u := &model.User{}
	require.NoError(t, u.SetPassword("hunter2"))
	require.NotEqual(t, "hunter2", u.Password)
	require.True(t, u.CheckPassword("hunter2"))
	require.False(t, u.CheckPassword("hunter3"))
}
