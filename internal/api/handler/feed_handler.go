package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/pkg/response"
)

// Feed 个人视角的内容流
// @Summary 查询 feed
// @Tags 内容
// @Param filter query string false "all / following / my" default(all)
// @Success 200 {object} response.Response{data=[]service.PostView}
// @Security BearerAuth
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	filter := c.DefaultQuery("filter", "all")
	posts, err := h.feedSvc.Feed(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts, "count": len(posts), "filter": filter})
}
