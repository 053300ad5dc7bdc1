package live

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vinverse/gamerlink/internal/service"
	"github.com/vinverse/gamerlink/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// client 单连接状态。conn 上的所有写（消息和 ping）都只经 writePump
// 一个 goroutine 发出，其余代码只往 send 投递。
type client struct {
	conn *websocket.Conn
	send chan service.MessageView
}

// writePump 连接的唯一写者：串行发送广播消息和保活 ping。
// send 关闭或任一写失败即退出，并负责关闭底层连接。
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case view, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(view); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub 按频道维护本机 websocket 连接，订阅 redis 后把消息推给订阅者。
type Hub struct {
	rdb   *redis.Client
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]*client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb, rooms: make(map[string]map[*websocket.Conn]*client)}
}

// Run 订阅所有房间 channel 并分发，阻塞直到 ctx 取消。
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}
	sub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			room := strings.TrimPrefix(m.Channel, channelPrefix)
			var view service.MessageView
			if err := json.Unmarshal([]byte(m.Payload), &view); err != nil {
				logger.Warn("hub drop malformed payload", zap.String("room", room), zap.Error(err))
				continue
			}
			h.broadcast(room, view)
		}
	}
}

func (h *Hub) Register(room string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan service.MessageView, sendBuffer)}
	h.mu.Lock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*websocket.Conn]*client)
	}
	h.rooms[room][conn] = c
	h.mu.Unlock()
	go c.writePump()
}

// Unregister 幂等；首次摘除时关闭 send，由 writePump 收尾关闭连接。
func (h *Hub) Unregister(room string, conn *websocket.Conn) {
	h.mu.Lock()
	var c *client
	if conns, ok := h.rooms[room]; ok {
		if cl, ok := conns[conn]; ok {
			c = cl
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()
	if c != nil {
		close(c.send)
	}
}

// broadcast 把消息投递到各连接的 send。持读锁期间 send 不会被关闭
// （Unregister 要拿写锁），投不进的慢连接摘除。
func (h *Hub) broadcast(room string, view service.MessageView) {
	h.mu.RLock()
	var slow []*websocket.Conn
	for conn, c := range h.rooms[room] {
		select {
		case c.send <- view:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.RUnlock()
	for _, conn := range slow {
		logger.Warn("hub drop slow subscriber", zap.String("room", room))
		h.Unregister(room, conn)
	}
}

// ReadLoop 维持连接存活并响应 pong；连接断开时反注册。
func (h *Hub) ReadLoop(room string, conn *websocket.Conn) {
	defer h.Unregister(room, conn)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
