package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
	"github.com/vinverse/gamerlink/pkg/response"
)

type createLFTRequest struct {
	Game      string `json:"game" binding:"required"`
	GameID    string `json:"game_id"`
	Rank      string `json:"rank"`
	Region    string `json:"region"`
	PlayStyle string `json:"play_style" binding:"omitempty,playstyle"`
	Message   string `json:"message"`
}

// CreateLFT 发布找队广告
// @Summary 发布 LFT
// @Tags 找队
// @Accept json
// @Produce json
// @Param request body createLFTRequest true "广告内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/lft [post]
func (h *Handler) CreateLFT(c *gin.Context) {
	var req createLFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.lftSvc.Create(c.Request.Context(), middleware.CurrentUser(c), &model.LFTPost{
		Game:      req.Game,
		GameID:    req.GameID,
		Rank:      req.Rank,
		Region:    req.Region,
		PlayStyle: req.PlayStyle,
		Message:   req.Message,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, post)
}

// ListLFT 活跃广告列表，支持 game/rank/region/play_style 过滤
// @Summary 查询 LFT
// @Tags 找队
// @Param game query string false "游戏名模糊匹配"
// @Param rank query string false "段位模糊匹配"
// @Param region query string false "地区模糊匹配"
// @Param play_style query string false "打法精确匹配"
// @Success 200 {object} response.Response{data=[]service.LFTView}
// @Security BearerAuth
// @Router /api/v1/lft [get]
func (h *Handler) ListLFT(c *gin.Context) {
	posts, err := h.lftSvc.List(c.Request.Context(), repository.LFTFilter{
		Game:      c.Query("game"),
		GameID:    c.Query("game_id"),
		Rank:      c.Query("rank"),
		Region:    c.Query("region"),
		PlayStyle: c.Query("play_style"),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, posts)
}

// DeactivateLFT 下架自己的广告
// @Summary 下架 LFT
// @Tags 找队
// @Param id path string true "广告ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/lft/{id} [delete]
func (h *Handler) DeactivateLFT(c *gin.Context) {
	if err := h.lftSvc.Deactivate(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

// Recommendations 队友推荐，余弦相似度 + 段位/游戏加权，top 10
// @Summary 队友推荐
// @Tags 找队
// @Param game query string false "游戏过滤"
// @Success 200 {object} response.Response{data=[]service.Recommendation}
// @Security BearerAuth
// @Router /api/v1/lft/recommendations [get]
func (h *Handler) Recommendations(c *gin.Context) {
	recs, err := h.matchSvc.Recommendations(c.Request.Context(), middleware.CurrentUser(c), c.Query("game"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"recommendations": recs, "count": len(recs)})
}
