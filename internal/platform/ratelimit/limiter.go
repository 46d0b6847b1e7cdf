package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var ErrTimeout = errors.New("rate limit wait exceeds timeout")

// Limiter spaces requests one token every minute/perMinute with a burst of
// one, so no 60s window ever sees more than perMinute grants. Callers choose
// between blocking until a token frees up and failing fast when the wait
// would exceed their timeout.
type Limiter struct {
	bucket    *rate.Limiter
	perMinute int
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	granted []time.Time
}

type Option func(*Limiter)

// WithClock swaps the time source and the sleeper, for deterministic tests.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

func NewPerMinute(perMinute int, opts ...Option) *Limiter {
	if perMinute < 1 {
		perMinute = 1
	}
	l := &Limiter{
		bucket:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		perMinute: perMinute,
		now:       time.Now,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire takes one token. With timeout <= 0 it waits as long as needed,
// bounded only by ctx. Otherwise it returns ErrTimeout without waiting when
// the token would not be available within timeout.
func (l *Limiter) Acquire(ctx context.Context, timeout time.Duration) error {
	now := l.now()
	reservation := l.bucket.ReserveN(now, 1)
	if !reservation.OK() {
		return ErrTimeout
	}

	delay := reservation.DelayFrom(now)
	if delay > 0 {
		if timeout > 0 && delay > timeout {
			reservation.CancelAt(now)
			return ErrTimeout
		}
		if err := l.sleep(ctx, delay); err != nil {
			reservation.CancelAt(l.now())
			return err
		}
	}
	l.record(now.Add(delay))
	return nil
}

func (l *Limiter) record(at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.granted = append(l.pruned(at), at)
}

// pruned drops grants older than one minute before at. Callers hold mu.
func (l *Limiter) pruned(at time.Time) []time.Time {
	cutoff := at.Add(-time.Minute)
	i := 0
	for i < len(l.granted) && !l.granted[i].After(cutoff) {
		i++
	}
	return l.granted[i:]
}

// Delay reports how long a new Acquire would currently wait.
func (l *Limiter) Delay() time.Duration {
	now := l.now()
	tokens := l.bucket.TokensAt(now)
	if tokens >= 1 {
		return 0
	}
	missing := 1 - tokens
	return time.Duration(missing * float64(time.Minute) / float64(l.perMinute))
}

// Used reports how many requests were granted in the trailing minute.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.granted = l.pruned(l.now())
	return len(l.granted)
}

func (l *Limiter) PerMinute() int {
	return l.perMinute
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
