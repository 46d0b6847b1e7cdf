// Package resilience guards calls to flaky upstream providers.
package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// BreakerConfig is read from <PREFIX>_ENABLED, _FAILURE_COUNT, _COOLDOWN and
// _PROBES.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	Cooldown         time.Duration
	Probes           int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		Cooldown:         15 * time.Second,
		Probes:           2,
	}
}

// Breaker opens after FailureThreshold consecutive failures, rejects calls
// for Cooldown, then lets Probes trial calls through. All probes must
// succeed to close it again. A nil *Breaker admits everything.
type Breaker struct {
	cfg BreakerConfig
	cb  *gobreaker.TwoStepCircuitBreaker
}

// NewBreaker returns nil when cfg is disabled. Non-positive settings fall
// back to DefaultBreakerConfig. State changes are logged under name.
func NewBreaker(name string, cfg BreakerConfig, logger *logging.Logger) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	if cfg.Probes < 1 {
		cfg.Probes = def.Probes
	}

	threshold := uint32(cfg.FailureThreshold)
	return &Breaker{
		cfg: cfg,
		cb: gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: uint32(cfg.Probes),
			Timeout:     cfg.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					"breaker", name,
					"from", stateOf(from),
					"to", stateOf(to),
				)
			},
		}),
	}
}

// Acquire admits one call. The returned func must be called with whether
// the call counted as a failure; calls after the first are ignored.
func (b *Breaker) Acquire() (release func(failed bool), err error) {
	if b == nil {
		return func(bool) {}, nil
	}

	done, err := b.cb.Allow()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}

	var once sync.Once
	return func(failed bool) {
		once.Do(func() { done(!failed) })
	}, nil
}

// State reports half-open once the cooldown has elapsed.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	return stateOf(b.cb.State())
}

func stateOf(s gobreaker.State) State {
	switch s {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}
