package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/pkg/response"
)

type createTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Game        string `json:"game"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members" binding:"omitempty,min=1,max=50"`
}

// CreateTeam 建队，创建者自动入队
// @Summary 创建战队
// @Tags 战队
// @Accept json
// @Produce json
// @Param request body createTeamRequest true "战队信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/teams [post]
func (h *Handler) CreateTeam(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	team, err := h.teamSvc.Create(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Game, req.Description, req.MaxMembers)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, team)
}

// ListTeams 战队列表（带成员数）
// @Summary 查询战队
// @Tags 战队
// @Success 200 {object} response.Response{data=[]service.TeamView}
// @Security BearerAuth
// @Router /api/v1/teams [get]
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, teams)
}

// JoinTeam 入队，满员返回 400
// @Summary 加入战队
// @Tags 战队
// @Param team_id path string true "战队ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/teams/{team_id}/join [post]
func (h *Handler) JoinTeam(c *gin.Context) {
	if err := h.teamSvc.Join(c.Request.Context(), c.Param("team_id"), middleware.CurrentUser(c)); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "joined"})
}

// LeaveTeam 退队，非成员也返回成功
// @Summary 退出战队
// @Tags 战队
// @Param team_id path string true "战队ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/teams/{team_id}/leave [delete]
func (h *Handler) LeaveTeam(c *gin.Context) {
	if err := h.teamSvc.Leave(c.Request.Context(), c.Param("team_id"), middleware.CurrentUser(c)); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "left"})
}
