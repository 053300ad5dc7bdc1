package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/vinverse/gamerlink/internal/api/middleware"
    "github.com/vinverse/gamerlink/pkg/response"
)

// Follow 关注目标用户（幂等：重复关注返回 200 而非 201）
// @Summary 关注用户
// @Tags 关系链
// @Produce json
// @Param user_id path string true "被关注用户ID"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/follow/{user_id} [post]
func (h *Handler) Follow(c *gin.Context) {
    targetID := c.Param("user_id")
    res, err := h.relSvc.Follow(c.Request.Context(), middleware.CurrentUser(c), targetID)
    if err != nil {
        renderError(c, err)
        return
    }
    body := gin.H{"created": res.Created, "friendship": res.Edge}
    if res.Created {
        response.Created(c, body)
        return
    }
    response.Success(c, body)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Param user_id path string true "被取关用户ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/follow/{user_id} [delete]
func (h *Handler) Unfollow(c *gin.Context) {
    targetID := c.Param("user_id")
    if err := h.relSvc.Unfollow(c.Request.Context(), middleware.CurrentUser(c), targetID); err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, nil)
}

// Connections 查询某用户的关注/粉丝总览（公开读，可匿名）
// @Summary 查询关注与粉丝
// @Tags 关系链
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=service.ConnectionsView}
// @Failure 404 {object} response.Response
// @Router /api/v1/connections/{user_id} [get]
func (h *Handler) Connections(c *gin.Context) {
    userID := c.Param("user_id")
    view, err := h.relSvc.Connections(c.Request.Context(), userID, middleware.CurrentUser(c))
    if err != nil {
        renderError(c, err)
        return
    }
    response.Success(c, view)
}
