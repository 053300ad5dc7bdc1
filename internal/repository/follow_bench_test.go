package repository

import (
    "context"
    "fmt"
    "math/rand"
    "testing"

    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/vinverse/gamerlink/internal/model"
)

func setupFollowBenchDB(b *testing.B) *gorm.DB {
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    if err != nil {
        b.Fatalf("open db: %v", err)
    }
    if err := db.AutoMigrate(&model.User{}, &model.Follow{}); err != nil {
        b.Fatalf("migrate: %v", err)
    }
    return db
}

func BenchmarkFollowGetOrCreate(b *testing.B) {
    db := setupFollowBenchDB(b)
    repo := NewFollowRepository(db)
    ctx := context.Background()

    // 预创建部分用户
    users := make([]model.User, 1000)
    for i := range users { users[i] = model.User{ID: fmt.Sprintf("u%04d", i), Username: fmt.Sprintf("u%04d", i), Email: fmt.Sprintf("u%04d@example.com", i), Password: "p"} }
    if err := db.Create(&users).Error; err != nil { b.Fatalf("seed users: %v", err) }

    rng := rand.New(rand.NewSource(1))
    b.ResetTimer()
    for i := 0; i < b.N; i++ {
        from := users[rng.Intn(len(users))].ID
        to := users[rng.Intn(len(users))].ID
        if from == to { continue }
        _, _, _ = repo.GetOrCreate(ctx, from, to)
    }
}

func BenchmarkListFollowerIDsPaged(b *testing.B) {
    db := setupFollowBenchDB(b)
    repo := NewFollowRepository(db)
    ctx := context.Background()

    // 一个大 V，N 个粉丝
    const N = 5000
    u0 := model.User{ID: "u0", Username: "u0", Email: "u0@example.com", Password: "p"}
    _ = db.Create(&u0).Error
    for i := 1; i <= N; i++ {
        uid := fmt.Sprintf("u%v", i)
        _ = db.Create(&model.User{ID: uid, Username: uid, Email: uid+"@example.com", Password: "p"}).Error
        _, _, _ = repo.GetOrCreate(ctx, uid, u0.ID)
    }

    b.ResetTimer()
    b.Run("FirstPage", func(b *testing.B) {
        for i := 0; i < b.N; i++ {
            _, _ = repo.ListFollowerIDs(ctx, u0.ID, 0, 500)
        }
    })
    b.Run("DeepPage", func(b *testing.B) {
        for i := 0; i < b.N; i++ {
            _, _ = repo.ListFollowerIDs(ctx, u0.ID, 4500, 500)
        }
    })
}
