package cache

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type storeItem struct {
	value    any
	deadline time.Time
}

func (it storeItem) liveAt(now time.Time) bool {
	return it.deadline.IsZero() || now.Before(it.deadline)
}

// Store is an in-process key/value map with per-entry deadlines. Expired
// entries are dropped lazily on read. It backs MemoryCache and the catalog
// repository decorators.
type Store struct {
	ttl   time.Duration
	clock func() time.Time
	loads singleflight.Group

	mu    sync.RWMutex
	items map[string]storeItem
}

// NewStore uses ttl for Set and GetOrLoad. ttl <= 0 keeps entries forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, clock: time.Now, items: map[string]storeItem{}}
}

// WithClock swaps the time source. Used by tests.
func (s *Store) WithClock(clock func() time.Time) *Store {
	if clock != nil {
		s.clock = clock
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !it.liveAt(s.clock()) {
		s.mu.Lock()
		if cur, still := s.items[key]; still && cur.deadline.Equal(it.deadline) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *Store) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}
	it := storeItem{value: value}
	if ttl > 0 {
		it.deadline = s.clock().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// DeleteMatching drops keys matching a Redis-style glob and reports how many
// went. A malformed glob falls back to prefix matching on its literal part.
func (s *Store) DeleteMatching(_ context.Context, pattern string) int {
	if pattern == "" {
		return 0
	}
	match := func(key string) bool {
		ok, err := path.Match(pattern, key)
		if err != nil {
			return strings.HasPrefix(key, strings.TrimSuffix(pattern, "*"))
		}
		return ok
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.items {
		if match(key) {
			delete(s.items, key)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value for key or runs load once across
// concurrent callers and caches a successful result. Errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if load == nil {
		return nil, errors.New("cache store: nil loader")
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, v)
		return v, nil
	})
	return v, err
}
