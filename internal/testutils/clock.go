package testutils

import (
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/jzx17/retrier/pkg/types"
)

// NewMockClock creates a mock clock for testing
func NewMockClock(t testing.TB) *quartz.Mock {
	return quartz.NewMock(t)
}

// ClockWrapper wraps quartz.Mock to implement the types.Clock interface
type ClockWrapper struct {
	*quartz.Mock
}

// NewClockWrapper creates a new ClockWrapper
func NewClockWrapper(mock *quartz.Mock) *ClockWrapper {
	return &ClockWrapper{Mock: mock}
}

// Now returns the current mock time
func (c *ClockWrapper) Now() time.Time {
	return c.Mock.Now()
}

// After returns a channel that delivers the current time after the duration
func (c *ClockWrapper) After(d time.Duration) <-chan time.Time {
	timer := c.Mock.NewTimer(d)
	return timer.C
}

// Sleep blocks for the given duration of mock time
func (c *ClockWrapper) Sleep(d time.Duration) {
	timer := c.Mock.NewTimer(d)
	<-timer.C
}

// Since returns the mock time elapsed since t
func (c *ClockWrapper) Since(t time.Time) time.Duration {
	return c.Mock.Since(t)
}

// NewTimer creates a new Timer on the mock clock
func (c *ClockWrapper) NewTimer(d time.Duration) types.Timer {
	timer := c.Mock.NewTimer(d)
	return &TimerWrapper{timer: timer}
}

// TimerWrapper wraps quartz timer
type TimerWrapper struct {
	timer *quartz.Timer
}

func (t *TimerWrapper) C() <-chan time.Time {
	return t.timer.C
}

func (t *TimerWrapper) Stop() bool {
	return t.timer.Stop()
}

func (t *TimerWrapper) Reset(d time.Duration) bool {
	return t.timer.Reset(d)
}
