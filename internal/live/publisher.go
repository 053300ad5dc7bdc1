package live

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/vinverse/gamerlink/internal/service"
)

const channelPrefix = "room:"

// RedisPublisher 把新消息发到频道对应的 redis channel，
// 由各实例的 Hub 订阅后推给本机的 websocket 连接。
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, room string, msg service.MessageView) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, channelPrefix+room, payload).Err()
}
