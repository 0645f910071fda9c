// Package retry provides the retry executor
package retry

import (
	"context"

	"github.com/jzx17/retrier/pkg/types"
)

// Func is the operation type to retry.
type Func[T any] func(ctx context.Context) (T, error)

// Executor runs operations through a retry policy. It holds no per-run
// state: each call to Do owns its own attempt counter and start time, so a
// single executor is safe for concurrent reuse.
type Executor struct {
	policy *Policy
	clock  types.Clock
}

// ExecutorOption is a configuration option for the executor
type ExecutorOption func(*Executor)

// WithClock sets the clock used for elapsed-time tracking and backoff
// sleeps. Tests substitute a fake clock here.
func WithClock(clock types.Clock) ExecutorOption {
	return func(e *Executor) {
		e.clock = clock
	}
}

// NewExecutor creates an executor for the given policy. A nil policy means
// DefaultPolicy: retry any error forever with no delay.
func NewExecutor(policy *Policy, opts ...ExecutorOption) *Executor {
	executor := &Executor{
		policy: policy,
		clock:  types.NewRealClock(),
	}

	if executor.policy == nil {
		executor.policy = DefaultPolicy()
	}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Do invokes fn until its outcome no longer warrants a retry or a stop
// strategy fires.
//
// An outcome the predicates reject terminates immediately: a value is
// returned as-is and an error propagates unchanged, never wrapped. When a
// stop strategy fires on a still-retryable outcome the run is exhausted:
// with wrapping enabled it returns a *RetryError carrying the last attempt;
// otherwise the last error is returned directly, or the last value when the
// loop was retrying on results.
//
// Errors swallowed along the way are not surfaced; only the terminal
// outcome reaches the caller. The backoff sleep runs on the executor's
// clock and is interruptible through ctx.
func Do[T any](e *Executor, ctx context.Context, fn Func[T]) (T, error) {
	var zero T
	p := e.policy
	firstAttemptAt := e.clock.Now()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if p.beforeAttempt != nil {
			p.beforeAttempt(attempt)
		}

		startedAt := e.clock.Now()
		value, err := fn(ctx)

		var att Attempt
		if err != nil {
			att = newFailureAttempt(attempt, startedAt, err)
		} else {
			att = newValueAttempt(attempt, startedAt, value)
		}

		if !p.shouldRetry(att) {
			if att.Failed() {
				return zero, att.Err()
			}
			return value, nil
		}

		if p.afterAttempt != nil {
			p.afterAttempt(attempt)
		}

		elapsed := e.clock.Since(firstAttemptAt)
		if p.stop.ShouldStop(attempt, elapsed) {
			if p.wrapError {
				return zero, &RetryError{LastAttempt: att}
			}
			if att.Failed() {
				return zero, att.Err()
			}
			// a stop bound can end a retry-on-result loop; the last
			// observed value is the final result
			return value, nil
		}

		delay := p.wait.NextDelay(attempt)
		delay += jitter(p.jitterMax)

		if delay > 0 {
			timer := e.clock.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C():
			}
		}
	}
}

// Wrap turns fn into an operation with the identical signature that runs
// the full retry loop on every invocation.
func Wrap[T any](e *Executor, fn Func[T]) Func[T] {
	return func(ctx context.Context) (T, error) {
		return Do(e, ctx, fn)
	}
}
