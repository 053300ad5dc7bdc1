package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/pkg/response"
)

type requestInsightRequest struct {
	TournamentID string `json:"tournament_id" binding:"required"`
}

// RequestInsight 申请赛后战报：立即返回句柄，生成在后台异步完成
// @Summary 申请战报
// @Tags 战报
// @Accept json
// @Produce json
// @Param request body requestInsightRequest true "赛事ID"
// @Success 202 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/insights [post]
func (h *Handler) RequestInsight(c *gin.Context) {
	var req requestInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	insight, err := h.insightSvc.Enqueue(c.Request.Context(), middleware.CurrentUser(c), req.TournamentID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Accepted(c, insight)
}

// GetInsight 查询单份战报（含生成状态）
// @Summary 查询战报
// @Tags 战报
// @Param id path string true "战报ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/insights/{id} [get]
func (h *Handler) GetInsight(c *gin.Context) {
	insight, err := h.insightSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, insight)
}

// ListInsights 当前用户的战报列表
// @Summary 战报列表
// @Tags 战报
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/insights [get]
func (h *Handler) ListInsights(c *gin.Context) {
	insights, err := h.insightSvc.ListByUser(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, insights)
}
