package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
)

func newRelationshipFixture(t *testing.T) (RelationshipService, *gorm.DB) {
	db := setupDB(t)
	followRepo := repository.NewFollowRepository(db)
	userRepo := repository.NewUserRepository(db)
	followers := newFollowerCache(t, db)
	notifier := NewNotifier(repository.NewNotificationRepository(db), followers)
	return NewRelationshipService(followRepo, userRepo, followers, notifier), db
}

func TestFollowCreatesEdgeAndNotification(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	res, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, res.Created)
	require.Equal(t, alice.ID, res.Edge.FollowerID)
	require.Equal(t, bob.ID, res.Edge.FolloweeID)
	require.EqualValues(t, 1, countNotifications(t, db, bob.ID))
}

func TestFollowIdempotent(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, first.Created)

	replay, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, replay.Created)
	require.Equal(t, first.Edge.ID, replay.Edge.ID)

	var edges int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&edges).Error)
	require.EqualValues(t, 1, edges)
	// 重放不再扇出通知
	require.EqualValues(t, 1, countNotifications(t, db, bob.ID))
}

func TestFollowSelfRejected(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.Follow(context.Background(), alice.ID, alice.ID)
	require.ErrorIs(t, err, ErrFollowSelf)
}

func TestFollowUnknownUser(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.Follow(context.Background(), alice.ID, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Follow(context.Background(), "nope", alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUnfollow(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	// 边已不存在
	err = svc.Unfollow(ctx, alice.ID, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUnfollowReversesFollow(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	view, err := svc.Connections(ctx, bob.ID, "")
	require.NoError(t, err)
	require.Empty(t, view.Followers)
	require.EqualValues(t, 0, view.FollowerCnt)
}

func TestConnections(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := svc.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	view, err := svc.Connections(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, view.FollowerCnt)
	require.EqualValues(t, 1, view.FollowingCnt)
	require.Equal(t, "alice", view.Followers[0].Username)
	require.Equal(t, "carol", view.Following[0].Username)
	require.True(t, view.IsFollowing)

	// 匿名视角不计算 is_following
	anon, err := svc.Connections(ctx, bob.ID, "")
	require.NoError(t, err)
	require.False(t, anon.IsFollowing)

	// 本人视角同样不计算
	self, err := svc.Connections(ctx, bob.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, self.IsFollowing)
}

// 计数来自边表；档案列表缺人（比如账号已删）时计数不跟着缩水。
func TestConnectionsCountsEdges(t *testing.T) {
	svc, db := newRelationshipFixture(t)
	ctx := context.Background()
	star := seedUser(t, db, "star")
	fans := []*model.User{
		seedUser(t, db, "fan1"),
		seedUser(t, db, "fan2"),
		seedUser(t, db, "fan3"),
	}
	for _, f := range fans {
		_, err := svc.Follow(ctx, f.ID, star.ID)
		require.NoError(t, err)
	}

	require.NoError(t, db.Delete(&model.User{}, "id = ?", fans[2].ID).Error)

	view, err := svc.Connections(ctx, star.ID, "")
	require.NoError(t, err)
	require.EqualValues(t, 3, view.FollowerCnt)
	require.Len(t, view.Followers, 2)
}

func TestConnectionsUnknownUser(t *testing.T) {
	svc, _ := newRelationshipFixture(t)
	_, err := svc.Connections(context.Background(), "nope", "")
	require.True(t, errors.Is(err, ErrNotFound))
}
