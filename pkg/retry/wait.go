// Package retry provides wait strategy implementations
package retry

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// DefaultMaxWait caps wait strategies whose maximum is left unset.
const DefaultMaxWait = 1073741823 * time.Millisecond

// WaitStrategy computes the delay before the next attempt. The attempt
// argument is the number of completed attempts, so the delay before the
// first retry is computed with attempt == 1. Implementations must return a
// non-negative duration and be safe to share across concurrent runs.
type WaitStrategy interface {
	// NextDelay returns the delay to sleep before the next attempt
	NextDelay(attempt int) time.Duration
}

// WaitFunc adapts a plain function to a WaitStrategy.
type WaitFunc func(attempt int) time.Duration

// NextDelay returns the delay to sleep before the next attempt
func (f WaitFunc) NextDelay(attempt int) time.Duration {
	return f(attempt)
}

// NoWait retries immediately. It is the default when no wait options are
// configured.
type NoWait struct{}

// NewNoWait creates a wait strategy with zero delay
func NewNoWait() *NoWait {
	return &NoWait{}
}

// NextDelay always returns 0
func (w *NoWait) NextDelay(attempt int) time.Duration {
	return 0
}

// FixedWait sleeps a constant duration before every retry.
type FixedWait struct {
	delay time.Duration
}

// NewFixedWait creates a fixed wait strategy
func NewFixedWait(delay time.Duration) (*FixedWait, error) {
	if delay < 0 {
		return nil, errors.New("retry: fixed wait cannot be negative")
	}
	return &FixedWait{delay: delay}, nil
}

// NextDelay returns the configured delay
func (w *FixedWait) NextDelay(attempt int) time.Duration {
	return w.delay
}

// RandomWait sleeps a uniform-random duration in [min, max) before every
// retry.
type RandomWait struct {
	min time.Duration
	max time.Duration
}

// NewRandomWait creates a random wait strategy; min must not exceed max
func NewRandomWait(min, max time.Duration) (*RandomWait, error) {
	if min < 0 {
		return nil, errors.New("retry: random wait min cannot be negative")
	}
	if min > max {
		return nil, errors.New("retry: random wait min cannot exceed max")
	}
	return &RandomWait{min: min, max: max}, nil
}

// NextDelay returns a fresh draw in [min, max)
func (w *RandomWait) NextDelay(attempt int) time.Duration {
	if w.max == w.min {
		return w.min
	}
	return w.min + time.Duration(rand.Int63n(int64(w.max-w.min)))
}

// ExponentialWait doubles the delay with every completed attempt:
// min(multiplier * 2^attempt, max). The first retry therefore waits
// 2 * multiplier, not multiplier.
type ExponentialWait struct {
	multiplier time.Duration
	max        time.Duration
}

// NewExponentialWait creates an exponential wait strategy. multiplier must
// be positive; max <= 0 falls back to DefaultMaxWait.
func NewExponentialWait(multiplier, max time.Duration) (*ExponentialWait, error) {
	if multiplier <= 0 {
		return nil, errors.New("retry: exponential wait multiplier must be positive")
	}
	if max <= 0 {
		max = DefaultMaxWait
	}
	return &ExponentialWait{multiplier: multiplier, max: max}, nil
}

// NextDelay returns the capped exponential delay
func (w *ExponentialWait) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(w.multiplier) * math.Pow(2, float64(attempt))

	// guard against float overflow before converting back
	if delay > float64(w.max) {
		return w.max
	}
	if delay < 0 {
		return 0
	}

	return time.Duration(delay)
}

// IncrementingWait grows the delay linearly: start + increment*(attempt-1),
// clamped to [0, max].
type IncrementingWait struct {
	start     time.Duration
	increment time.Duration
	max       time.Duration
}

// NewIncrementingWait creates a linearly growing wait strategy. max <= 0
// falls back to DefaultMaxWait. A negative increment is allowed; computed
// delays are floored at zero.
func NewIncrementingWait(start, increment, max time.Duration) (*IncrementingWait, error) {
	if start < 0 {
		return nil, errors.New("retry: incrementing wait start cannot be negative")
	}
	if max <= 0 {
		max = DefaultMaxWait
	}
	return &IncrementingWait{start: start, increment: increment, max: max}, nil
}

// NextDelay returns the clamped linear delay
func (w *IncrementingWait) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := w.start + w.increment*time.Duration(attempt-1)
	if delay > w.max {
		delay = w.max
	}
	if delay < 0 {
		delay = 0
	}

	return delay
}

// longestWait combines wait strategies by taking the longest delay any of
// them asks for. Used when several wait options are configured together.
type longestWait struct {
	strategies []WaitStrategy
}

// NextDelay returns the maximum delay over all member strategies
func (w *longestWait) NextDelay(attempt int) time.Duration {
	var longest time.Duration
	for _, strategy := range w.strategies {
		if delay := strategy.NextDelay(attempt); delay > longest {
			longest = delay
		}
	}
	return longest
}

// jitter returns a uniform draw in [0, max), or 0 when max is not positive.
func jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}
