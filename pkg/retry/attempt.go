// Package retry provides attempt outcome types
package retry

import (
	"fmt"
	"time"
)

// Attempt records one execution of a retried operation: either the value it
// returned or the error it failed with, never both. Attempts are immutable
// once recorded; the loop only retains the most recent one.
type Attempt struct {
	number    int
	startedAt time.Time
	value     any
	err       error
}

// newValueAttempt records an attempt that returned a value.
func newValueAttempt(number int, startedAt time.Time, value any) Attempt {
	return Attempt{number: number, startedAt: startedAt, value: value}
}

// newFailureAttempt records an attempt that failed with an error.
func newFailureAttempt(number int, startedAt time.Time, err error) Attempt {
	return Attempt{number: number, startedAt: startedAt, err: err}
}

// Number returns the 1-based attempt number.
func (a Attempt) Number() int {
	return a.number
}

// StartedAt returns when the attempt began.
func (a Attempt) StartedAt() time.Time {
	return a.startedAt
}

// Failed reports whether the attempt ended with an error.
func (a Attempt) Failed() bool {
	return a.err != nil
}

// Err returns the attempt's error, or nil if it returned a value.
func (a Attempt) Err() error {
	return a.err
}

// Value returns the attempt's return value, or nil if it failed.
func (a Attempt) Value() any {
	return a.value
}

// String implements fmt.Stringer
func (a Attempt) String() string {
	if a.err != nil {
		return fmt.Sprintf("attempt %d: error: %v", a.number, a.err)
	}
	return fmt.Sprintf("attempt %d: value: %v", a.number, a.value)
}

// RetryError signals that retries were exhausted without an acceptable
// outcome. It carries the last attempt made before giving up, which may hold
// either an error or an unwanted return value. It is only produced when the
// policy enables error wrapping; see WithWrapError.
type RetryError struct {
	LastAttempt Attempt
}

// Error implements the error interface
func (e *RetryError) Error() string {
	return fmt.Sprintf("retries exhausted after %s", e.LastAttempt)
}

// Unwrap returns the error of the last attempt, or nil when the loop was
// exhausted on an unwanted return value rather than a failure.
func (e *RetryError) Unwrap() error {
	return e.LastAttempt.Err()
}

// Attempts returns the number of attempts made before giving up.
func (e *RetryError) Attempts() int {
	return e.LastAttempt.Number()
}
