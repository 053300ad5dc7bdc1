package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/pkg/response"
)

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost 发帖并向粉丝扇出通知
// @Summary 发帖
// @Tags 内容
// @Accept json
// @Produce json
// @Param request body createPostRequest true "内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.engSvc.CreatePost(c.Request.Context(), middleware.CurrentUser(c), req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, post)
}

// Like 点赞（幂等：重复点赞返回 200）
// @Summary 点赞
// @Tags 内容
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/posts/{post_id}/like [post]
func (h *Handler) Like(c *gin.Context) {
	res, err := h.engSvc.Like(c.Request.Context(), c.Param("post_id"), middleware.CurrentUser(c))
	if err != nil {
		renderError(c, err)
		return
	}
	body := gin.H{"liked": res.Liked}
	if res.Created {
		response.Created(c, body)
		return
	}
	response.Success(c, body)
}

// Unlike 取消点赞（不存在也返回成功）
// @Summary 取消点赞
// @Tags 内容
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/posts/{post_id}/like [delete]
func (h *Handler) Unlike(c *gin.Context) {
	if err := h.engSvc.Unlike(c.Request.Context(), c.Param("post_id"), middleware.CurrentUser(c)); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"liked": false})
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListComments 评论列表（按创建时间）
// @Summary 查询评论
// @Tags 内容
// @Param post_id path string true "帖子ID"
// @Success 200 {object} response.Response{data=[]service.CommentView}
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/posts/{post_id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.engSvc.ListComments(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, comments)
}

// AddComment 追加评论
// @Summary 发表评论
// @Tags 内容
// @Accept json
// @Produce json
// @Param post_id path string true "帖子ID"
// @Param request body createCommentRequest true "评论内容"
// @Success 201 {object} response.Response{data=service.CommentView}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/posts/{post_id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.engSvc.AddComment(c.Request.Context(), c.Param("post_id"), middleware.CurrentUser(c), req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, comment)
}
