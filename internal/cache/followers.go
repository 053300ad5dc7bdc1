package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vinverse/gamerlink/internal/repository"
)

// FollowerCache keeps each user's follower-id list in a Redis list so
// fan-out and follower pages read ranges without hitting the primary
// store. Entries expire after ttl; follow/unfollow invalidate eagerly.
type FollowerCache struct {
	cache      *redis.Client
	followRepo repository.FollowRepository
	ttl        time.Duration
}

func NewFollowerCache(cache *redis.Client, followRepo repository.FollowRepository, ttl time.Duration) *FollowerCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FollowerCache{cache: cache, followRepo: followRepo, ttl: ttl}
}

func key(userID string) string {
	return fmt.Sprintf("followers:index:%s", userID)
}

// Page returns follower IDs [offset, offset+limit) for userID,
// loading and caching the full index on miss.
func (c *FollowerCache) Page(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	if c.cache != nil {
		exists, err := c.cache.Exists(ctx, key(userID)).Result()
		if err == nil && exists > 0 {
			ids, err := c.cache.LRange(ctx, key(userID), int64(offset), int64(offset+limit-1)).Result()
			if err == nil {
				return ids, nil
			}
		}
	}

	all, err := c.loadAndCache(ctx, userID)
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []string{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (c *FollowerCache) loadAndCache(ctx context.Context, userID string) ([]string, error) {
	var all []string
	const page = 1000
	for off := 0; ; off += page {
		ids, err := c.followRepo.ListFollowerIDs(ctx, userID, off, page)
		if err != nil {
			return nil, err
		}
		all = append(all, ids...)
		if len(ids) < page {
			break
		}
	}

	if c.cache != nil && len(all) > 0 {
		pipe := c.cache.Pipeline()
		pipe.Del(ctx, key(userID))
		pipe.RPush(ctx, key(userID), toAny(all)...)
		pipe.Expire(ctx, key(userID), c.ttl)
		// cache write is best effort
		_, _ = pipe.Exec(ctx)
	}
	return all, nil
}

// Invalidate drops the cached index after a follow edge change.
func (c *FollowerCache) Invalidate(ctx context.Context, userID string) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Del(ctx, key(userID)).Err()
}

func toAny(strs []string) []interface{} {
	result := make([]interface{}, len(strs))
	for i, s := range strs {
		result[i] = s
	}
	return result
}
