// Package testutils provides deterministic fixtures for retry tests
package testutils

import (
	"context"
	"sync/atomic"
)

// Counter counts invocations of a generated operation.
type Counter struct {
	calls int32
}

// Calls returns how many times the operation has run
func (c *Counter) Calls() int {
	return int(atomic.LoadInt32(&c.calls))
}

func (c *Counter) inc() int32 {
	return atomic.AddInt32(&c.calls, 1)
}

// FailUntil builds an operation that fails with err for the first n calls
// and returns value from call n+1 onwards.
func FailUntil[T any](n int, err error, value T) (*Counter, func(context.Context) (T, error)) {
	counter := &Counter{}
	return counter, func(ctx context.Context) (T, error) {
		var zero T
		if counter.inc() <= int32(n) {
			return zero, err
		}
		return value, nil
	}
}

// ZeroUntil builds an operation that returns T's zero value for the first n
// calls and value from call n+1 onwards. It never fails.
func ZeroUntil[T any](n int, value T) (*Counter, func(context.Context) (T, error)) {
	counter := &Counter{}
	return counter, func(ctx context.Context) (T, error) {
		var zero T
		if counter.inc() <= int32(n) {
			return zero, nil
		}
		return value, nil
	}
}

// AlwaysFail builds an operation that fails with err on every call.
func AlwaysFail[T any](err error) (*Counter, func(context.Context) (T, error)) {
	counter := &Counter{}
	return counter, func(ctx context.Context) (T, error) {
		var zero T
		counter.inc()
		return zero, err
	}
}
