package service

import (
    "context"
    "encoding/json"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/vinverse/gamerlink/internal/model"
    "github.com/vinverse/gamerlink/internal/repository"
)

func TestInsightLifecycle(t *testing.T) {
    db := setupDB(t)
    ctx := context.Background()
    insightRepo := repository.NewInsightRepository(db)
    worker := NewInsightWorker(insightRepo, repository.NewUserRepository(db), 16)
    stop := worker.Start(1)
    defer func() { _ = stop(context.Background()) }()
    svc := NewInsightService(insightRepo, worker)

    player := seedUser(t, db, "player")

    insight, err := svc.Enqueue(ctx, player.ID, "t-1")
    require.NoError(t, err)
    require.NotEmpty(t, insight.ID)

    require.Eventually(t, func() bool {
        got, err := svc.Get(ctx, insight.ID)
        return err == nil && got.Status == model.InsightStatusCompleted
    }, 5*time.Second, 20*time.Millisecond)

    got, err := svc.Get(ctx, insight.ID)
    require.NoError(t, err)
    var summary map[string]string
    require.NoError(t, json.Unmarshal([]byte(got.Summary), &summary))
    require.Contains(t, summary["assessment"], "player")
    require.NotEmpty(t, summary["improvements"])
}

func TestInsightIdempotentPerTournament(t *testing.T) {
    db := setupDB(t)
    ctx := context.Background()
    insightRepo := repository.NewInsightRepository(db)
    worker := NewInsightWorker(insightRepo, repository.NewUserRepository(db), 16)
    stop := worker.Start(1)
    defer func() { _ = stop(context.Background()) }()
    svc := NewInsightService(insightRepo, worker)

    player := seedUser(t, db, "player")

    first, err := svc.Enqueue(ctx, player.ID, "t-1")
    require.NoError(t, err)
    second, err := svc.Enqueue(ctx, player.ID, "t-1")
    require.NoError(t, err)
    require.Equal(t, first.ID, second.ID)

    // 不同赛事各一条
    other, err := svc.Enqueue(ctx, player.ID, "t-2")
    require.NoError(t, err)
    require.NotEqual(t, first.ID, other.ID)

    list, err := svc.ListByUser(ctx, player.ID)
    require.NoError(t, err)
    require.Len(t, list, 2)
}

func TestInsightUnknownUserFails(t *testing.T) {
    db := setupDB(t)
    ctx := context.Background()
    insightRepo := repository.NewInsightRepository(db)
    worker := NewInsightWorker(insightRepo, repository.NewUserRepository(db), 16)
    stop := worker.Start(1)
    defer func() { _ = stop(context.Background()) }()
    svc := NewInsightService(insightRepo, worker)

    insight, err := svc.Enqueue(ctx, "ghost", "t-1")
    require.NoError(t, err)

    require.Eventually(t, func() bool {
        got, err := svc.Get(ctx, insight.ID)
        return err == nil && got.Status == model.InsightStatusFailed
    }, 5*time.Second, 20*time.Millisecond)
}

func TestGetInsightNotFound(t *testing.T) {
    db := setupDB(t)
    insightRepo := repository.NewInsightRepository(db)
    worker := NewInsightWorker(insightRepo, repository.NewUserRepository(db), 16)
    svc := NewInsightService(insightRepo, worker)

    _, err := svc.Get(context.Background(), "nope")
    require.ErrorIs(t, err, ErrNotFound)
}
