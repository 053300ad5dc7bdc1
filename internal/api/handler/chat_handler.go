package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vinverse/gamerlink/internal/api/middleware"
	"github.com/vinverse/gamerlink/internal/model"
	"github.com/vinverse/gamerlink/internal/repository"
	"github.com/vinverse/gamerlink/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域由 cors 中间件统一把关
	CheckOrigin: func(r *http.Request) bool { return true },
}

type createRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
	RoomType    string `json:"room_type" binding:"required,oneof=global game team private"`
	Game        string `json:"game"`
	Description string `json:"description"`
	TeamID      string `json:"team_id"`
}

// CreateRoom 建频道；team 类型必须带 team_id，private 创建者自动入成员表
// @Summary 创建频道
// @Tags 聊天
// @Accept json
// @Produce json
// @Param request body createRoomRequest true "频道信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	room, err := h.chatSvc.CreateRoom(c.Request.Context(), middleware.CurrentUser(c),
		req.Name, req.DisplayName, req.Game, req.Description, model.RoomType(req.RoomType), req.TeamID)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, room)
}

// ListRooms 当前用户可见的频道列表
// @Summary 查询频道
// @Tags 聊天
// @Param room_type query string false "频道类型过滤"
// @Param game query string false "游戏过滤"
// @Success 200 {object} response.Response{data=[]service.RoomView}
// @Security BearerAuth
// @Router /api/v1/rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.chatSvc.ListRooms(c.Request.Context(), middleware.CurrentUser(c), repository.RoomFilter{
		RoomType: c.Query("room_type"),
		Game:     c.Query("game"),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, rooms)
}

// DefaultRooms 默认公开频道（global + game），匿名可读
// @Summary 默认频道
// @Tags 聊天
// @Success 200 {object} response.Response{data=[]service.RoomView}
// @Router /api/v1/rooms/default [get]
func (h *Handler) DefaultRooms(c *gin.Context) {
	rooms, err := h.chatSvc.DefaultRooms(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, rooms)
}

// ListMessages 频道历史消息；无权或频道不存在返回空列表
// @Summary 查询消息
// @Tags 聊天
// @Param room path string true "频道名"
// @Param limit query int false "条数上限" default(50)
// @Success 200 {object} response.Response{data=[]service.MessageView}
// @Security BearerAuth
// @Router /api/v1/rooms/{room}/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	msgs, err := h.chatSvc.ListMessages(c.Request.Context(), c.Param("room"), middleware.CurrentUser(c), limit)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"messages": msgs, "count": len(msgs)})
}

type postMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostMessage 发消息，落库后经 redis 推给在线订阅者
// @Summary 发送消息
// @Tags 聊天
// @Accept json
// @Produce json
// @Param room path string true "频道名"
// @Param request body postMessageRequest true "消息内容"
// @Success 201 {object} response.Response{data=service.MessageView}
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/rooms/{room}/messages [post]
func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.chatSvc.PostMessage(c.Request.Context(), c.Param("room"), middleware.CurrentUser(c), req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, msg)
}

// RoomSocket websocket 订阅入口，入口处做一次访问判定
// @Summary 订阅频道
// @Tags 聊天
// @Param room path string true "频道名"
// @Security BearerAuth
// @Router /ws/rooms/{room} [get]
func (h *Handler) RoomSocket(c *gin.Context) {
	room := c.Param("room")
	userID := middleware.CurrentUser(c)
	ok, err := h.chatSvc.CanJoin(c.Request.Context(), room, userID)
	if err != nil {
		renderError(c, err)
		return
	}
	if !ok {
		response.Forbidden(c, "room access denied")
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时响应已写出
		return
	}
	h.hub.Register(room, conn)
	go h.hub.ReadLoop(room, conn)
}
