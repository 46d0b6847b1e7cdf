package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
)

// GetJSON decodes the cached value at key into T. Undecodable entries count
// as misses and are evicted.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var out T
	if c == nil || !c.Enabled() {
		return out, false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		c.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return out, true
}

func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) {
	if c == nil || !c.Enabled() {
		return
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}

// Remember returns the cached T at key or loads, stores and returns it.
// Loader errors are returned as-is and nothing is cached.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if cached, ok := GetJSON[T](ctx, c, key); ok {
		return cached, nil
	}
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	SetJSON(ctx, c, key, value, ttl)
	return value, nil
}
