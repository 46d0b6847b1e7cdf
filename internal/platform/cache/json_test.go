package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetJSON_CorruptEntryIsEvicted(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "stats:team:1:2025", []byte("{not json"), time.Minute)

	_, ok := GetJSON[cachedPayload](ctx, c, "stats:team:1:2025")
	assert.False(t, ok)

	_, stillThere := c.Get(ctx, "stats:team:1:2025")
	assert.False(t, stillThere)
}

func TestRemember_LoadsOnceAndSkipsErrors(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	calls := 0

	load := func(context.Context) (cachedPayload, error) {
		calls++
		return cachedPayload{Name: "Alpha", Count: calls}, nil
	}

	first, err := Remember(ctx, c, "k", time.Minute, load)
	require.NoError(t, err)
	second, err := Remember(ctx, c, "k", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err = Remember(ctx, c, "other", time.Minute, func(context.Context) (cachedPayload, error) {
		return cachedPayload{}, boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get(ctx, "other")
	assert.False(t, ok)
}

func TestRemember_NullCacheAlwaysLoads(t *testing.T) {
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, _ = Remember[int](ctx, NullCache{}, "k", time.Minute, load)
	_, _ = Remember[int](ctx, NullCache{}, "k", time.Minute, load)

	assert.Equal(t, 2, calls)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "stats:team:12:2025", Key(CategoryTeam, 12, 2025))
	assert.Equal(t, "stats:h2h:3:7", Key(CategoryH2H, 3, 7))
	assert.Equal(t, "fixtures:id:42", FixtureKey("id", 42))

	ttl := TTLs{Live: 5 * time.Second}.WithDefaults()
	assert.Equal(t, 5*time.Second, ttl.Live)
	assert.Equal(t, 24*time.Hour, ttl.H2H)
}
