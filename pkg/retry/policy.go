// Package retry provides retry policy configuration
package retry

import (
	"errors"
	"time"
)

// ErrorPredicate decides whether a failed attempt warrants another try.
type ErrorPredicate func(err error) bool

// ResultPredicate decides whether a returned value warrants another try.
type ResultPredicate func(result any) bool

// AttemptHook observes attempt numbers around each execution.
type AttemptHook func(attempt int)

// RetryAnyError retries every failure. It is the default error predicate.
func RetryAnyError(err error) bool {
	return true
}

// RetryOnErrors builds an error predicate that retries only failures
// matching one of the given errors, in the errors.Is sense.
func RetryOnErrors(errs ...error) ErrorPredicate {
	return func(err error) bool {
		for _, candidate := range errs {
			if errors.Is(err, candidate) {
				return true
			}
		}
		return false
	}
}

// Policy is the immutable retry configuration: when to stop, how long to
// wait, and which outcomes warrant another attempt. Construct it with
// NewPolicy; invalid parameters fail there, never mid-loop.
type Policy struct {
	stop          StopStrategy
	wait          WaitStrategy
	retryOnError  ErrorPredicate
	retryOnResult ResultPredicate
	wrapError     bool
	jitterMax     time.Duration
	beforeAttempt AttemptHook
	afterAttempt  AttemptHook
}

// policyConfig collects raw option values before validation.
type policyConfig struct {
	maxAttempts *int
	maxDelay    *time.Duration

	fixedWait     *time.Duration
	randomMin     *time.Duration
	randomMax     *time.Duration
	expMultiplier *time.Duration
	expMax        *time.Duration
	incrStart     *time.Duration
	incrIncrement *time.Duration
	incrMax       *time.Duration

	stops []StopStrategy
	waits []WaitStrategy

	retryOnError  ErrorPredicate
	retryOnResult ResultPredicate
	wrapError     bool
	jitterMax     time.Duration
	beforeAttempt AttemptHook
	afterAttempt  AttemptHook
}

// Option is a configuration option for retry policies
type Option func(*policyConfig)

// NewPolicy creates an immutable retry policy from the given options.
// Multiple stop options combine with OR; multiple wait options combine by
// taking the longest delay. With no options at all the policy retries any
// error forever with no delay and never retries on a returned value.
func NewPolicy(opts ...Option) (*Policy, error) {
	cfg := &policyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	stop, err := buildStop(cfg)
	if err != nil {
		return nil, err
	}

	wait, err := buildWait(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.jitterMax < 0 {
		return nil, errors.New("retry: wait jitter cannot be negative")
	}

	retryOnError := cfg.retryOnError
	if retryOnError == nil {
		retryOnError = RetryAnyError
	}

	return &Policy{
		stop:          stop,
		wait:          wait,
		retryOnError:  retryOnError,
		retryOnResult: cfg.retryOnResult,
		wrapError:     cfg.wrapError,
		jitterMax:     cfg.jitterMax,
		beforeAttempt: cfg.beforeAttempt,
		afterAttempt:  cfg.afterAttempt,
	}, nil
}

// DefaultPolicy returns the zero-configuration policy: retry on any error,
// never on a returned value, never stop, never wait.
func DefaultPolicy() *Policy {
	policy, _ := NewPolicy()
	return policy
}

// buildStop assembles the effective stop strategy from the configured
// options, defaulting to NeverStop.
func buildStop(cfg *policyConfig) (StopStrategy, error) {
	stops := append([]StopStrategy(nil), cfg.stops...)

	if cfg.maxAttempts != nil {
		s, err := NewStopAfterAttempts(*cfg.maxAttempts)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}

	if cfg.maxDelay != nil {
		s, err := NewStopAfterDelay(*cfg.maxDelay)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}

	switch len(stops) {
	case 0:
		return NewNeverStop(), nil
	case 1:
		return stops[0], nil
	default:
		return NewStopAny(stops...), nil
	}
}

// buildWait assembles the effective wait strategy from the configured
// options, defaulting to NoWait.
func buildWait(cfg *policyConfig) (WaitStrategy, error) {
	waits := append([]WaitStrategy(nil), cfg.waits...)

	if cfg.fixedWait != nil {
		w, err := NewFixedWait(*cfg.fixedWait)
		if err != nil {
			return nil, err
		}
		waits = append(waits, w)
	}

	if cfg.randomMin != nil || cfg.randomMax != nil {
		var min, max time.Duration
		if cfg.randomMin != nil {
			min = *cfg.randomMin
		}
		if cfg.randomMax != nil {
			max = *cfg.randomMax
		}
		w, err := NewRandomWait(min, max)
		if err != nil {
			return nil, err
		}
		waits = append(waits, w)
	}

	if cfg.expMultiplier != nil || cfg.expMax != nil {
		multiplier := time.Millisecond
		if cfg.expMultiplier != nil {
			multiplier = *cfg.expMultiplier
		}
		var max time.Duration
		if cfg.expMax != nil {
			max = *cfg.expMax
		}
		w, err := NewExponentialWait(multiplier, max)
		if err != nil {
			return nil, err
		}
		waits = append(waits, w)
	}

	if cfg.incrStart != nil || cfg.incrIncrement != nil {
		var start, increment, max time.Duration
		if cfg.incrStart != nil {
			start = *cfg.incrStart
		}
		if cfg.incrIncrement != nil {
			increment = *cfg.incrIncrement
		}
		if cfg.incrMax != nil {
			max = *cfg.incrMax
		}
		w, err := NewIncrementingWait(start, increment, max)
		if err != nil {
			return nil, err
		}
		waits = append(waits, w)
	}

	switch len(waits) {
	case 0:
		return NewNoWait(), nil
	case 1:
		return waits[0], nil
	default:
		return &longestWait{strategies: waits}, nil
	}
}

// shouldRetry applies the predicate matching the attempt's variant. Values
// with no result predicate configured terminate the loop immediately.
func (p *Policy) shouldRetry(att Attempt) bool {
	if att.Failed() {
		return p.retryOnError(att.Err())
	}
	if p.retryOnResult == nil {
		return false
	}
	return p.retryOnResult(att.Value())
}

// WithMaxAttempts stops retrying once n attempts have completed. n must be
// at least 1; n == 1 disables retries entirely.
func WithMaxAttempts(n int) Option {
	return func(cfg *policyConfig) {
		cfg.maxAttempts = &n
	}
}

// WithMaxDelay stops retrying once the time since the first attempt reaches
// max, checked before each subsequent attempt.
func WithMaxDelay(max time.Duration) Option {
	return func(cfg *policyConfig) {
		cfg.maxDelay = &max
	}
}

// WithStopStrategy adds a custom stop strategy, combined with any other
// configured stops by logical OR.
func WithStopStrategy(s StopStrategy) Option {
	return func(cfg *policyConfig) {
		cfg.stops = append(cfg.stops, s)
	}
}

// WithFixedWait sleeps a constant delay between attempts.
func WithFixedWait(delay time.Duration) Option {
	return func(cfg *policyConfig) {
		cfg.fixedWait = &delay
	}
}

// WithRandomWait sleeps a uniform-random delay in [min, max) between
// attempts.
func WithRandomWait(min, max time.Duration) Option {
	return func(cfg *policyConfig) {
		cfg.randomMin = &min
		cfg.randomMax = &max
	}
}

// WithExponentialWait doubles the delay after every attempt, starting from
// 2*multiplier and capped at max (DefaultMaxWait when max <= 0).
func WithExponentialWait(multiplier, max time.Duration) Option {
	return func(cfg *policyConfig) {
		cfg.expMultiplier = &multiplier
		cfg.expMax = &max
	}
}

// WithIncrementingWait grows the delay linearly from start by increment per
// attempt, capped at max (DefaultMaxWait when max <= 0).
func WithIncrementingWait(start, increment, max time.Duration) Option {
	return func(cfg *policyConfig) {
		cfg.incrStart = &start
		cfg.incrIncrement = &increment
		cfg.incrMax = &max
	}
}

// WithWaitStrategy adds a custom wait strategy. When combined with other
// wait options the longest delay wins.
func WithWaitStrategy(w WaitStrategy) Option {
	return func(cfg *policyConfig) {
		cfg.waits = append(cfg.waits, w)
	}
}

// WithWaitJitter adds a uniform-random duration in [0, max) on top of every
// computed delay.
func WithWaitJitter(max time.Duration) Option {
	return func(cfg *policyConfig) {
		cfg.jitterMax = max
	}
}

// WithRetryOnError sets the predicate consulted when an attempt fails.
// Failures it rejects propagate to the caller unchanged.
func WithRetryOnError(pred ErrorPredicate) Option {
	return func(cfg *policyConfig) {
		cfg.retryOnError = pred
	}
}

// WithRetryOnErrors retries only failures matching one of the given errors
// (errors.Is); everything else propagates unchanged.
func WithRetryOnErrors(errs ...error) Option {
	return WithRetryOnError(RetryOnErrors(errs...))
}

// WithRetryOnResult sets the predicate consulted when an attempt returns a
// value; values it accepts trigger another attempt.
func WithRetryOnResult(pred ResultPredicate) Option {
	return func(cfg *policyConfig) {
		cfg.retryOnResult = pred
	}
}

// WithWrapError makes an exhausted run return a *RetryError carrying the
// last attempt instead of surfacing the raw outcome. Non-retryable failures
// are never wrapped.
func WithWrapError(wrap bool) Option {
	return func(cfg *policyConfig) {
		cfg.wrapError = wrap
	}
}

// WithBeforeAttempt runs fn with the attempt number before each execution.
func WithBeforeAttempt(fn AttemptHook) Option {
	return func(cfg *policyConfig) {
		cfg.beforeAttempt = fn
	}
}

// WithAfterAttempt runs fn with the attempt number after each execution
// whose outcome warranted a retry.
func WithAfterAttempt(fn AttemptHook) Option {
	return func(cfg *policyConfig) {
		cfg.afterAttempt = fn
	}
}
