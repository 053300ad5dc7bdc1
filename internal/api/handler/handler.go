package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/live"
	"github.com/vinverse/gamerlink/internal/service"
	"github.com/vinverse/gamerlink/pkg/response"
)

// Handler 聚合全部服务依赖，按领域拆文件
type Handler struct {
	relSvc     service.RelationshipService
	feedSvc    service.FeedService
	engSvc     service.EngagementService
	teamSvc    service.TeamService
	lftSvc     service.LFTService
	matchSvc   service.MatcherService
	chatSvc    service.ChatService
	notifSvc   service.NotificationService
	insightSvc service.InsightService
	hub        *live.Hub
}

func New(
	relSvc service.RelationshipService,
	feedSvc service.FeedService,
	engSvc service.EngagementService,
	teamSvc service.TeamService,
	lftSvc service.LFTService,
	matchSvc service.MatcherService,
	chatSvc service.ChatService,
	notifSvc service.NotificationService,
	insightSvc service.InsightService,
	hub *live.Hub,
) *Handler {
	return &Handler{
		relSvc:     relSvc,
		feedSvc:    feedSvc,
		engSvc:     engSvc,
		teamSvc:    teamSvc,
		lftSvc:     lftSvc,
		matchSvc:   matchSvc,
		chatSvc:    chatSvc,
		notifSvc:   notifSvc,
		insightSvc: insightSvc,
		hub:        hub,
	}
}

// renderError 服务层错误到 HTTP 状态码的统一映射
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrTeamFull):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
