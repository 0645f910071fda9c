package retry

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_Defaults(t *testing.T) {
	policy, err := NewPolicy()
	require.NoError(t, err)

	// retry forever, no wait, retry on any error, never on a value
	assert.False(t, policy.stop.ShouldStop(1<<20, 24*time.Hour))
	assert.Zero(t, policy.wait.NextDelay(1000))
	assert.True(t, policy.shouldRetry(newFailureAttempt(1, time.Now(), errors.New("boom"))))
	assert.False(t, policy.shouldRetry(newValueAttempt(1, time.Now(), "any value")))
	assert.False(t, policy.wrapError)
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()
	require.NotNil(t, policy)
	assert.True(t, policy.shouldRetry(newFailureAttempt(1, time.Now(), errors.New("boom"))))
	assert.False(t, policy.shouldRetry(newValueAttempt(1, time.Now(), nil)))
}

func TestNewPolicy_Validation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"max attempts below one", WithMaxAttempts(0)},
		{"negative max delay", WithMaxDelay(-time.Second)},
		{"negative fixed wait", WithFixedWait(-time.Millisecond)},
		{"random wait min above max", WithRandomWait(time.Second, time.Millisecond)},
		{"non-positive exponential multiplier", WithExponentialWait(0, time.Second)},
		{"negative incrementing start", WithIncrementingWait(-time.Millisecond, 0, 0)},
		{"negative jitter", WithWaitJitter(-time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewPolicy(tt.opt)
			assert.Error(t, err)
			assert.Nil(t, policy)
		})
	}
}

func TestNewPolicy_StopsCombineWithOr(t *testing.T) {
	policy, err := NewPolicy(
		WithMaxAttempts(3),
		WithMaxDelay(time.Second),
	)
	require.NoError(t, err)

	assert.False(t, policy.stop.ShouldStop(2, 500*time.Millisecond))
	assert.True(t, policy.stop.ShouldStop(3, 0), "attempt bound should fire alone")
	assert.True(t, policy.stop.ShouldStop(1, time.Second), "delay bound should fire alone")
}

func TestNewPolicy_WaitsCombineWithMax(t *testing.T) {
	policy, err := NewPolicy(
		WithFixedWait(100*time.Millisecond),
		WithIncrementingWait(0, 75*time.Millisecond, 0),
	)
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, policy.wait.NextDelay(1))
	assert.Equal(t, 100*time.Millisecond, policy.wait.NextDelay(2))
	assert.Equal(t, 150*time.Millisecond, policy.wait.NextDelay(3))
}

func TestNewPolicy_CustomStrategies(t *testing.T) {
	policy, err := NewPolicy(
		WithStopStrategy(StopFunc(func(attempt int, elapsed time.Duration) bool {
			return attempt >= 2
		})),
		WithWaitStrategy(WaitFunc(func(attempt int) time.Duration {
			return time.Duration(attempt) * time.Millisecond
		})),
	)
	require.NoError(t, err)

	assert.False(t, policy.stop.ShouldStop(1, 0))
	assert.True(t, policy.stop.ShouldStop(2, 0))
	assert.Equal(t, 5*time.Millisecond, policy.wait.NextDelay(5))
}

func TestRetryOnErrors(t *testing.T) {
	errTimeout := errors.New("timeout")
	errRefused := errors.New("connection refused")
	pred := RetryOnErrors(errTimeout, errRefused)

	assert.True(t, pred(errTimeout))
	assert.True(t, pred(fmt.Errorf("dial: %w", errRefused)), "wrapped errors should match")
	assert.False(t, pred(errors.New("permission denied")))
}

func TestPolicy_RetryOnErrorPredicate(t *testing.T) {
	errFlaky := errors.New("flaky")
	policy, err := NewPolicy(WithRetryOnErrors(errFlaky))
	require.NoError(t, err)

	assert.True(t, policy.shouldRetry(newFailureAttempt(1, time.Now(), errFlaky)))
	assert.False(t, policy.shouldRetry(newFailureAttempt(1, time.Now(), errors.New("fatal"))))
}

func TestPolicy_RetryOnResultPredicate(t *testing.T) {
	policy, err := NewPolicy(WithRetryOnResult(func(v any) bool {
		return v == nil
	}))
	require.NoError(t, err)

	assert.True(t, policy.shouldRetry(newValueAttempt(1, time.Now(), nil)))
	assert.False(t, policy.shouldRetry(newValueAttempt(1, time.Now(), "done")))
	// the error predicate is untouched by a result predicate
	assert.True(t, policy.shouldRetry(newFailureAttempt(1, time.Now(), errors.New("boom"))))
}
