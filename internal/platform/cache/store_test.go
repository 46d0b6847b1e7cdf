package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "standings", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]any, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "league:2002", load)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "standings", v)
	}
}

func TestStore_GetOrLoad_CachesOnlySuccess(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	boom := errors.New("db down")

	_, err := store.GetOrLoad(ctx, "team:5", func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Zero(t, store.Len())

	var calls int
	load := func(context.Context) (any, error) {
		calls++
		return "Bayern", nil
	}
	for range 2 {
		v, err := store.GetOrLoad(ctx, "team:5", load)
		require.NoError(t, err)
		assert.Equal(t, "Bayern", v)
	}
	assert.Equal(t, 1, calls)

	_, err = store.GetOrLoad(ctx, "team:5", nil)
	assert.Error(t, err)
}

func TestStore_SetWithTTL_ExpiresAgainstClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(0).WithClock(func() time.Time { return now })
	ctx := context.Background()

	store.SetWithTTL(ctx, "short", "a", time.Minute)
	store.Set(ctx, "forever", "b")

	now = now.Add(59 * time.Second)
	_, ok := store.Get(ctx, "short")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = store.Get(ctx, "short")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestStore_DeleteMatching(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	for _, key := range []string{"stats:team:1:2025", "stats:h2h:1:2", "fixtures:live", "statsx"} {
		store.Set(ctx, key, key)
	}

	assert.Equal(t, 2, store.DeleteMatching(ctx, "stats:*"))
	assert.Equal(t, 2, store.Len())
	_, ok := store.Get(ctx, "statsx")
	assert.True(t, ok)
	assert.Zero(t, store.DeleteMatching(ctx, ""))
}
