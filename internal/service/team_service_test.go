package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vinverse/gamerlink/internal/repository"
)

func newTeamFixture(t *testing.T) (TeamService, *gorm.DB) {
	db := setupDB(t)
	return NewTeamService(repository.NewTeamRepository(db), repository.NewUserRepository(db)), db
}

func TestCreateTeamAutoJoinsCreator(t *testing.T) {
	svc, db := newTeamFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	team, err := svc.Create(ctx, alice.ID, "Squad", "valorant", "", 0)
	require.NoError(t, err)
	require.Equal(t, 5, team.MaxMembers)

	isMember, err := svc.IsMember(ctx, team.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, isMember)
}

func TestJoinTeamCapacity(t *testing.T) {
	svc, db := newTeamFixture(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	team, err := svc.Create(ctx, owner.ID, "Trio", "league", "", 3)
	require.NoError(t, err)

	u1 := seedUser(t, db, "u1")
	u2 := seedUser(t, db, "u2")
	require.NoError(t, svc.Join(ctx, team.ID, u1.ID))
	require.NoError(t, svc.Join(ctx, team.ID, u2.ID))

	// 第 4 人满员
	late := seedUser(t, db, "late")
	require.ErrorIs(t, svc.Join(ctx, team.ID, late.ID), ErrTeamFull)

	// 有人退出后名额释放
	require.NoError(t, svc.Leave(ctx, team.ID, u1.ID))
	require.NoError(t, svc.Join(ctx, team.ID, late.ID))
}

func TestJoinTeamIdempotent(t *testing.T) {
	svc, db := newTeamFixture(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	team, err := svc.Create(ctx, owner.ID, "Duo", "valorant", "", 2)
	require.NoError(t, err)
	member := seedUser(t, db, "member")
	require.NoError(t, svc.Join(ctx, team.ID, member.ID))

	// 已是成员：满员状态下重复加入仍是 no-op
	require.NoError(t, svc.Join(ctx, team.ID, member.ID))

	teams, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.EqualValues(t, 2, teams[0].MemberCount)
}

func TestJoinUnknownTeam(t *testing.T) {
	svc, db := newTeamFixture(t)
	alice := seedUser(t, db, "alice")
	require.ErrorIs(t, svc.Join(context.Background(), "nope", alice.ID), ErrNotFound)
}

func TestLeaveTeam(t *testing.T) {
	svc, db := newTeamFixture(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	team, err := svc.Create(ctx, owner.ID, "Solo", "league", "", 5)
	require.NoError(t, err)

	// 非成员退出也成功
	stranger := seedUser(t, db, "stranger")
	require.NoError(t, svc.Leave(ctx, team.ID, stranger.ID))

	require.ErrorIs(t, svc.Leave(ctx, "nope", owner.ID), ErrNotFound)
}

func TestListTeamsMemberCounts(t *testing.T) {
	svc, db := newTeamFixture(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, owner.ID, fmt.Sprintf("team-%d", i), "valorant", "", 5)
		require.NoError(t, err)
	}
	teams, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	for _, tv := range teams {
		require.EqualValues(t, 1, tv.MemberCount)
	}
}
