package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

const clearBatchSize = 200

type RedisCache struct {
	client *redis.Client
	logger *logging.Logger
}

func NewRedisCache(client *redis.Client, logger *logging.Logger) *RedisCache {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisCache{client: client, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache delete failed", "key", key, "error", err)
	}
}

// Clear walks the keyspace with SCAN and deletes matches in batches.
func (c *RedisCache) Clear(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, clearBatchSize).Iterator()
	batch := make([]string, 0, clearBatchSize)
	removed := 0

	flush := func() bool {
		if len(batch) == 0 {
			return true
		}
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			c.logger.WarnContext(ctx, "cache clear failed", "pattern", pattern, "error", err)
			return false
		}
		removed += len(batch)
		batch = batch[:0]
		return true
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= clearBatchSize && !flush() {
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.WarnContext(ctx, "cache scan failed", "pattern", pattern, "error", err)
		return
	}
	if !flush() {
		return
	}
	c.logger.DebugContext(ctx, "cache cleared", "pattern", pattern, "removed", removed)
}

func (c *RedisCache) Enabled() bool {
	return true
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
