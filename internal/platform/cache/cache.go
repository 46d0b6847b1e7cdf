package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

// Cache is a best-effort byte cache. Implementations never surface backend
// failures: a broken backend behaves like a miss and writes are dropped.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// Clear removes every key matching a glob pattern such as "stats:*".
	Clear(ctx context.Context, pattern string)
	Enabled() bool
}

type Config struct {
	RedisURL    string
	DialTimeout time.Duration
	Logger      *logging.Logger
}

// New returns a RedisCache when RedisURL is set and reachable, otherwise a
// NullCache.
func New(ctx context.Context, cfg Config) Cache {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RedisURL == "" {
		logger.Info("cache disabled, no redis url configured")
		return NullCache{}
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("cache disabled, invalid redis url", "error", err)
		return NullCache{}
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = 2 * time.Second
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = 2 * time.Second
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("cache disabled, redis unreachable", "addr", opt.Addr, "error", err)
		_ = client.Close()
		return NullCache{}
	}

	logger.Info("cache connected", "addr", opt.Addr)
	return NewRedisCache(client, logger)
}

// NullCache always misses and drops writes.
type NullCache struct{}

func (NullCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (NullCache) Set(context.Context, string, []byte, time.Duration) {}

func (NullCache) Delete(context.Context, string) {}

func (NullCache) Clear(context.Context, string) {}

func (NullCache) Enabled() bool { return false }
