// @title GamerLink API
// @version 1.0
// @description 电竞社交平台服务端
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vinverse/gamerlink/config"
	"github.com/vinverse/gamerlink/internal/api"
	"github.com/vinverse/gamerlink/internal/api/handler"
	"github.com/vinverse/gamerlink/internal/cache"
	"github.com/vinverse/gamerlink/internal/live"
	"github.com/vinverse/gamerlink/internal/repository"
	"github.com/vinverse/gamerlink/internal/service"
	"github.com/vinverse/gamerlink/pkg/database"
	"github.com/vinverse/gamerlink/pkg/logger"
	"github.com/vinverse/gamerlink/pkg/tracing"
)

const followerCacheTTL = 10 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode, cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Trace.Enabled {
		shutdown, err := tracing.Init(ctx, "gamerlink", cfg.Trace.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(sctx)
			}()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// 降级运行：粉丝缓存与实时推送不可用，其余功能不受影响
		logger.Warn("redis unavailable, realtime delivery disabled", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	lftRepo := repository.NewLFTRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	insightRepo := repository.NewInsightRepository(db)

	followers := cache.NewFollowerCache(rdb, followRepo, followerCacheTTL)
	notifier := service.NewNotifier(notifRepo, followers)

	relSvc := service.NewRelationshipService(followRepo, userRepo, followers, notifier)
	feedSvc := service.NewFeedService(postRepo, followRepo, userRepo)
	engSvc := service.NewEngagementService(postRepo, userRepo, notifier)
	teamSvc := service.NewTeamService(teamRepo, userRepo)
	lftSvc := service.NewLFTService(lftRepo, userRepo)
	matchSvc := service.NewMatcherService(lftRepo, userRepo)
	publisher := live.NewRedisPublisher(rdb)
	chatSvc := service.NewChatService(roomRepo, teamRepo, userRepo, publisher)
	notifSvc := service.NewNotificationService(notifRepo)

	worker := service.NewInsightWorker(insightRepo, userRepo, 10000)
	stopWorker := worker.Start(2)
	insightSvc := service.NewInsightService(insightRepo, worker)

	hub := live.NewHub(rdb)
	go hub.Run(ctx)

	h := handler.New(relSvc, feedSvc, engSvc, teamSvc, lftSvc, matchSvc, chatSvc, notifSvc, insightSvc, hub)
	r := api.NewRouter(cfg, h)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	if err := stopWorker(sctx); err != nil {
		logger.Warn("insight worker shutdown", zap.Error(err))
	}
	_ = rdb.Close()
}
