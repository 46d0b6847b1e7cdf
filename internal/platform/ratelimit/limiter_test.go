package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	sleepE error
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	if c.sleepE != nil {
		return c.sleepE
	}
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestLimiter(perMinute int) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return NewPerMinute(perMinute, WithClock(clock.Now, clock.Sleep)), clock
}

func TestLimiter_NeverExceedsQuotaInsideOneMinute(t *testing.T) {
	limiter, clock := newTestLimiter(10)
	ctx := context.Background()
	start := clock.now

	granted := 0
	for {
		require.NoError(t, limiter.Acquire(ctx, 0))
		if clock.now.Sub(start) >= time.Minute {
			break
		}
		granted++
	}

	assert.Equal(t, 10, granted)
	assert.Equal(t, 10, limiter.Used())
}

func TestLimiter_SlidingWindowsStayWithinQuota(t *testing.T) {
	limiter, clock := newTestLimiter(4)
	ctx := context.Background()

	var grants []time.Time
	for i := 0; i < 20; i++ {
		require.NoError(t, limiter.Acquire(ctx, 0))
		grants = append(grants, clock.now)
	}

	for i := range grants {
		inWindow := 0
		for _, g := range grants[i:] {
			if g.Sub(grants[i]) < time.Minute {
				inWindow++
			}
		}
		assert.LessOrEqual(t, inWindow, 4, "window starting at grant %d", i)
	}
}

func TestLimiter_FirstRequestDoesNotWait(t *testing.T) {
	limiter, clock := newTestLimiter(10)

	require.NoError(t, limiter.Acquire(context.Background(), time.Second))
	assert.Empty(t, clock.slept)
	assert.Equal(t, 1, limiter.Used())
	assert.Equal(t, 6*time.Second, limiter.Delay())
}

func TestLimiter_FailsFastWhenWaitExceedsTimeout(t *testing.T) {
	limiter, clock := newTestLimiter(2)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, 0))

	err := limiter.Acquire(ctx, time.Second)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Empty(t, clock.slept, "fail-fast must not sleep")
	assert.Equal(t, 30*time.Second, limiter.Delay(), "cancelled reservation restores the bucket")
	assert.Equal(t, 1, limiter.Used())
}

func TestLimiter_BlocksUntilTokenFrees(t *testing.T) {
	limiter, clock := newTestLimiter(2)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx, 0))
	require.NoError(t, limiter.Acquire(ctx, 0))

	assert.Equal(t, []time.Duration{30 * time.Second}, clock.slept)
}

func TestLimiter_UsedForgetsGrantsOlderThanAMinute(t *testing.T) {
	limiter, clock := newTestLimiter(2)

	require.NoError(t, limiter.Acquire(context.Background(), 0))
	clock.now = clock.now.Add(61 * time.Second)
	assert.Zero(t, limiter.Used())
}

func TestLimiter_ContextCancelledWhileWaiting(t *testing.T) {
	limiter, clock := newTestLimiter(1)
	ctx := context.Background()
	require.NoError(t, limiter.Acquire(ctx, 0))

	clock.sleepE = context.Canceled
	assert.ErrorIs(t, limiter.Acquire(ctx, 0), context.Canceled)
	assert.Equal(t, 1, limiter.Used())
}
