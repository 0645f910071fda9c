// Package retry provides stop strategy implementations
package retry

import (
	"errors"
	"fmt"
	"time"
)

// StopStrategy decides when to give up retrying. Implementations must be
// pure functions of the attempt number and the time elapsed since the first
// attempt started; they are shared across concurrent runs.
type StopStrategy interface {
	// ShouldStop reports whether retrying should stop after the given
	// completed attempt, with elapsed measured from the first attempt.
	ShouldStop(attempt int, elapsed time.Duration) bool
}

// StopFunc adapts a plain function to a StopStrategy.
type StopFunc func(attempt int, elapsed time.Duration) bool

// ShouldStop reports whether retrying should stop
func (f StopFunc) ShouldStop(attempt int, elapsed time.Duration) bool {
	return f(attempt, elapsed)
}

// NeverStop retries indefinitely. It is the default when no stop options
// are configured.
type NeverStop struct{}

// NewNeverStop creates a stop strategy that never triggers
func NewNeverStop() *NeverStop {
	return &NeverStop{}
}

// ShouldStop always returns false
func (s *NeverStop) ShouldStop(attempt int, elapsed time.Duration) bool {
	return false
}

// StopAfterAttempts stops once a maximum number of attempts has completed.
type StopAfterAttempts struct {
	max int
}

// NewStopAfterAttempts creates a stop strategy bounded by attempt count.
// max must be at least 1; max == 1 allows the initial attempt only.
func NewStopAfterAttempts(max int) (*StopAfterAttempts, error) {
	if max < 1 {
		return nil, fmt.Errorf("retry: max attempts must be >= 1, got %d", max)
	}
	return &StopAfterAttempts{max: max}, nil
}

// ShouldStop returns true once attempt reaches the configured maximum
func (s *StopAfterAttempts) ShouldStop(attempt int, elapsed time.Duration) bool {
	return attempt >= s.max
}

// StopAfterDelay stops once the time elapsed since the first attempt reaches
// a bound. The bound is checked before the next attempt would start, so an
// attempt that would overshoot it is never taken.
type StopAfterDelay struct {
	max time.Duration
}

// NewStopAfterDelay creates a stop strategy bounded by cumulative elapsed time
func NewStopAfterDelay(max time.Duration) (*StopAfterDelay, error) {
	if max < 0 {
		return nil, errors.New("retry: max delay cannot be negative")
	}
	return &StopAfterDelay{max: max}, nil
}

// ShouldStop returns true once elapsed reaches the configured maximum
func (s *StopAfterDelay) ShouldStop(attempt int, elapsed time.Duration) bool {
	return elapsed >= s.max
}

// StopAny combines stop strategies with logical OR: retrying stops as soon
// as any of them says stop.
type StopAny struct {
	strategies []StopStrategy
}

// NewStopAny creates a composite stop strategy
func NewStopAny(strategies ...StopStrategy) *StopAny {
	return &StopAny{strategies: strategies}
}

// ShouldStop returns true if any member strategy triggers
func (s *StopAny) ShouldStop(attempt int, elapsed time.Duration) bool {
	for _, strategy := range s.strategies {
		if strategy.ShouldStop(attempt, elapsed) {
			return true
		}
	}
	return false
}
