package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, nil), mr
}

func TestRedisCache_SetGetExpire(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "stats:team:1:2025", []byte(`{"wins":3}`), time.Hour)

	got, ok := c.Get(ctx, "stats:team:1:2025")
	require.True(t, ok)
	assert.Equal(t, `{"wins":3}`, string(got))

	mr.FastForward(time.Hour + time.Second)
	_, ok = c.Get(ctx, "stats:team:1:2025")
	assert.False(t, ok)
}

func TestRedisCache_ClearDeletesOnlyMatchingKeys(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	for i := 0; i < clearBatchSize+25; i++ {
		c.Set(ctx, Key(CategoryTeam, i, 2025), []byte("1"), time.Hour)
	}
	c.Set(ctx, FixtureKey("live"), []byte("[]"), time.Minute)

	c.Clear(ctx, StatsPattern)

	assert.Equal(t, []string{"fixtures:live"}, mr.Keys())
}

func TestRedisCache_BackendFailureIsAMiss(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	mr.Close()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		c.Set(ctx, "k", []byte("v"), time.Minute)
		c.Clear(ctx, StatsPattern)
		c.Delete(ctx, "k")
	})
}

func TestNew_FallsBackToNullCache(t *testing.T) {
	ctx := context.Background()

	assert.IsType(t, NullCache{}, New(ctx, Config{}))
	assert.IsType(t, NullCache{}, New(ctx, Config{RedisURL: "redis://127.0.0.1:1/0", DialTimeout: 50 * time.Millisecond}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := New(ctx, Config{RedisURL: "redis://" + mr.Addr() + "/0"})
	require.IsType(t, &RedisCache{}, c)
	assert.True(t, c.Enabled())
	_ = c.(*RedisCache).Close()
}
