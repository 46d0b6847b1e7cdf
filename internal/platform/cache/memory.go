package cache

import (
	"context"
	"time"
)

// MemoryCache is a process-local Cache over Store.
type MemoryCache struct {
	store *Store
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{store: NewStore(0)}
}

func NewMemoryCacheWithStore(store *Store) *MemoryCache {
	if store == nil {
		store = NewStore(0)
	}
	return &MemoryCache{store: store}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.store.Get(ctx, key)
	if !ok {
		return nil, false
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.store.SetWithTTL(ctx, key, append([]byte(nil), value...), ttl)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.store.Delete(ctx, key)
}

func (c *MemoryCache) Clear(ctx context.Context, pattern string) {
	c.store.DeleteMatching(ctx, pattern)
}

func (c *MemoryCache) Enabled() bool {
	return true
}
