// 通知扇出压测：造 N 个粉丝，重复发帖并测量收件箱落库延迟。
// 环境变量：N 粉丝数，REPEAT 重复次数。
package main

import (
    "context"
    "fmt"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/google/uuid"
    "github.com/redis/go-redis/v9"

    "github.com/vinverse/gamerlink/config"
    "github.com/vinverse/gamerlink/internal/cache"
    "github.com/vinverse/gamerlink/internal/model"
    "github.com/vinverse/gamerlink/internal/repository"
    "github.com/vinverse/gamerlink/internal/service"
    "github.com/vinverse/gamerlink/pkg/database"
    "github.com/vinverse/gamerlink/pkg/logger"
)

func main() {
    cfg, err := config.Load()
    if err != nil { panic(err) }
    _ = logger.Init(cfg.Server.Mode, cfg.Log.Level)
    db, err := database.InitDB(cfg)
    if err != nil { panic(err) }
    if err := database.Migrate(db); err != nil { panic(err) }

    N := 10000
    if s := os.Getenv("N"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { N = v } }
    REPEAT := 20
    if s := os.Getenv("REPEAT"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { REPEAT = v } }

    rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})

    followRepo := repository.NewFollowRepository(db)
    notifRepo := repository.NewNotificationRepository(db)
    followers := cache.NewFollowerCache(rdb, followRepo, 10*time.Minute)
    notifier := service.NewNotifier(notifRepo, followers)

    ctx := context.Background()

    // 大 V + N 粉丝
    celeb := &model.User{Username: "bench-celeb", Email: "celeb@bench.local", Password: "p"}
    _ = db.Where("username = ?", celeb.Username).FirstOrCreate(celeb).Error
    fans := make([]model.User, N)
    batch := 1000
    for i := 0; i < N; i++ {
        id := uuid.New().String()
        fans[i] = model.User{ID: id, Username: "f" + id[:8], Email: id[:8] + "@bench.local", Password: "p", VinID: fmt.Sprintf("VIN-%07d", i+2)}
        if (i+1)%batch == 0 {
            sub := fans[i+1-batch : i+1]
            _ = db.Create(&sub).Error
        }
    }
    if N%batch != 0 {
        sub := fans[N-N%batch:]
        _ = db.Create(&sub).Error
    }
    for i := range fans {
        _, _, _ = followRepo.GetOrCreate(ctx, fans[i].ID, celeb.ID)
    }
    followers.Invalidate(ctx, celeb.ID)

    durs := make([]time.Duration, 0, REPEAT)
    for i := 0; i < REPEAT; i++ {
        post := &model.Post{ID: uuid.New().String(), AuthorID: celeb.ID, Content: fmt.Sprintf("bench post %d", i)}
        _ = db.Create(post).Error
        st := time.Now()
        notifier.PostCreated(ctx, celeb, post)
        durs = append(durs, time.Since(st))
    }

    pct := func(vs []time.Duration, p float64) time.Duration {
        xs := append([]time.Duration(nil), vs...)
        sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
        k := int(float64(len(xs)) * p)
        if k < 0 { k = 0 }
        if k >= len(xs) { k = len(xs) - 1 }
        return xs[k]
    }
    var sum time.Duration
    for _, d := range durs { sum += d }
    fmt.Printf("N=%d REPEAT=%d\n", N, REPEAT)
    fmt.Printf("PostCreated fan-out: avg=%v p95=%v p99=%v\n", sum/time.Duration(len(durs)), pct(durs, 0.95), pct(durs, 0.99))
}
