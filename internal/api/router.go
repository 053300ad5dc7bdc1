package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/vinverse/gamerlink/config"
	_ "github.com/vinverse/gamerlink/docs"
	"github.com/vinverse/gamerlink/internal/api/handler"
	"github.com/vinverse/gamerlink/internal/api/middleware"
)

// playStyles 找队广告允许的打法取值
var playStyles = map[string]bool{
	"casual": true, "competitive": true, "hardcore": true, "flexible": true,
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("playstyle", func(fl validator.FieldLevel) bool {
			return playStyles[strings.ToLower(fl.Field().String())]
		})
	}
}

// NewRouter 装配中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidators()

	r := gin.New()
	r.Use(middleware.RequestLog())
	r.Use(middleware.Recovery())
	r.Use(otelgin.Middleware("gamerlink"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rate.Limit(100), 200))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// 公开读：匿名可访问，带 token 时解析出 viewer
	public := v1.Group("", middleware.OptionalAuth(cfg.JWT.Secret))
	{
		public.GET("/connections/:user_id", h.Connections)
		public.GET("/rooms/default", h.DefaultRooms)
	}

	authed := v1.Group("", middleware.Auth(cfg.JWT.Secret))
	{
		authed.POST("/follow/:user_id", h.Follow)
		authed.DELETE("/follow/:user_id", h.Unfollow)

		authed.GET("/feed", h.Feed)
		authed.POST("/posts", h.CreatePost)
		authed.POST("/posts/:post_id/like", h.Like)
		authed.DELETE("/posts/:post_id/like", h.Unlike)
		authed.GET("/posts/:post_id/comments", h.ListComments)
		authed.POST("/posts/:post_id/comments", h.AddComment)

		authed.GET("/notifications", h.Notifications)
		authed.POST("/notifications/:id/read", h.MarkNotificationRead)
		authed.POST("/notifications/read-all", h.MarkAllNotificationsRead)

		authed.POST("/teams", h.CreateTeam)
		authed.GET("/teams", h.ListTeams)
		authed.POST("/teams/:team_id/join", h.JoinTeam)
		authed.DELETE("/teams/:team_id/leave", h.LeaveTeam)

		authed.POST("/lft", h.CreateLFT)
		authed.GET("/lft", h.ListLFT)
		authed.DELETE("/lft/:id", h.DeactivateLFT)
		authed.GET("/lft/recommendations", h.Recommendations)

		authed.POST("/rooms", h.CreateRoom)
		authed.GET("/rooms", h.ListRooms)
		authed.GET("/rooms/:room/messages", h.ListMessages)
		authed.POST("/rooms/:room/messages", h.PostMessage)

		authed.POST("/insights", h.RequestInsight)
		authed.GET("/insights", h.ListInsights)
		authed.GET("/insights/:id", h.GetInsight)
	}

	r.GET("/ws/rooms/:room", middleware.Auth(cfg.JWT.Secret), h.RoomSocket)

	return r
}
