// 本地联调数据：演示用户、关注关系、帖子、战队、默认频道与 LFT 广告，
// 并打印每个演示账号的 JWT。
package main

import (
    "context"
    "fmt"
    "time"

    "github.com/joho/godotenv"

    "github.com/vinverse/gamerlink/config"
    "github.com/vinverse/gamerlink/internal/auth"
    "github.com/vinverse/gamerlink/internal/model"
    "github.com/vinverse/gamerlink/internal/repository"
    "github.com/vinverse/gamerlink/internal/service"
    "github.com/vinverse/gamerlink/pkg/database"
    "github.com/vinverse/gamerlink/pkg/logger"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
    _ = godotenv.Load()
    cfg := must(config.Load())
    if err := logger.Init(cfg.Server.Mode, cfg.Log.Level); err != nil {
        panic(err)
    }
    db := must(database.InitDB(cfg))
    if err := database.Migrate(db); err != nil {
        panic(err)
    }

    ctx := context.Background()
    userRepo := repository.NewUserRepository(db)
    followRepo := repository.NewFollowRepository(db)
    postRepo := repository.NewPostRepository(db)
    teamRepo := repository.NewTeamRepository(db)
    lftRepo := repository.NewLFTRepository(db)
    roomRepo := repository.NewRoomRepository(db)

    teamSvc := service.NewTeamService(teamRepo, userRepo)

    type demo struct {
        username, email, rank, tag, game string
    }
    demos := []demo{
        {"shadowstrike", "shadow@example.com", "Diamond", "ShadowStrike#EU", "valorant"},
        {"nightowl", "owl@example.com", "Diamond", "NightOwl#NA", "valorant"},
        {"pixelqueen", "pixel@example.com", "Gold", "PixelQueen#EU", "league"},
        {"frostbyte", "frost@example.com", "Platinum", "FrostByte#KR", "league"},
        {"rocketman", "rocket@example.com", "", "RocketMan#NA", "rocketleague"},
    }

    users := make([]*model.User, 0, len(demos))
    for _, d := range demos {
        if existing, err := userRepo.GetByUsername(ctx, d.username); err == nil {
            users = append(users, existing)
            continue
        }
        u := &model.User{
            Username: d.username,
            Email:    d.email,
            Rank:     d.rank,
            GamerTag: d.tag,
            Verified: true,
        }
        if err := u.SetPassword("gamerlink123"); err != nil {
            panic(err)
        }
        if err := userRepo.Create(ctx, u); err != nil {
            panic(err)
        }
        users = append(users, u)
    }

    // 关注链：后面的都关注第一个，形成一个小型大 V
    for _, u := range users[1:] {
        _, _, _ = followRepo.GetOrCreate(ctx, u.ID, users[0].ID)
    }

    for i, u := range users {
        post := &model.Post{
            AuthorID: u.ID,
            Content:  fmt.Sprintf("GG everyone, demo post #%d from %s", i+1, u.Username),
        }
        _ = postRepo.Create(ctx, post)
    }

    if _, err := teamSvc.Create(ctx, users[0].ID, "Shadow Squad", "valorant", "demo team", 5); err != nil {
        logger.Warn("seed team skipped")
    }

    for _, r := range []model.Room{
        {Name: "global", DisplayName: "Global Lobby", RoomType: model.RoomGlobal, Active: true},
        {Name: "valorant", DisplayName: "Valorant", RoomType: model.RoomGame, Game: "valorant", Active: true},
        {Name: "league", DisplayName: "League of Legends", RoomType: model.RoomGame, Game: "league", Active: true},
    } {
        room := r
        if _, err := roomRepo.GetByName(ctx, room.Name); err != nil {
            _ = roomRepo.Create(ctx, &room)
        }
    }

    for _, u := range users[:2] {
        _ = lftRepo.Create(ctx, &model.LFTPost{
            AuthorID:  u.ID,
            Game:      "valorant",
            Rank:      u.Rank,
            Region:    "EU",
            PlayStyle: "competitive",
            Message:   "Looking for a duo partner, evenings CET",
            Active:    true,
        })
    }

    ttl := time.Duration(cfg.JWT.ExpireHours) * time.Hour
    for _, u := range users {
        token := must(auth.GenerateToken(cfg.JWT.Secret, u.ID, u.Username, ttl))
        fmt.Printf("%-12s %s  %s\n", u.Username, u.VinID, token)
    }
}
