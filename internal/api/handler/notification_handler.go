package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/pkg/response"
)

// Notifications 收件箱（最新在前）
// @Summary 查询通知
// @Tags 通知
// @Param limit query int false "条数上限" default(50)
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/notifications [get]
func (h *Handler) Notifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	userID := middleware.CurrentUser(c)
	notifs, err := h.notifSvc.List(c.Request.Context(), userID, limit)
	if err != nil {
		renderError(c, err)
		return
	}
	unread, err := h.notifSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"notifications": notifs, "unread_count": unread})
}

// MarkNotificationRead 标记单条已读
// @Summary 标记已读
// @Tags 通知
// @Param id path string true "通知ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/notifications/{id}/read [post]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	if err := h.notifSvc.MarkRead(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllNotificationsRead 全部已读
// @Summary 全部已读
// @Tags 通知
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/notifications/read-all [post]
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.notifSvc.MarkAllRead(c.Request.Context(), middleware.CurrentUser(c)); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}
