package testfixtures

import (
	"sync"
	"time"
)

// ReferenceTime is the instant fixtures start from unless told otherwise:
// mid-morning on a Wednesday, well away from midnight and DST changes.
func ReferenceTime() time.Time {
	return time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)
}

// Clock provides a controllable time source for tests.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock set to start, or to ReferenceTime when start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// Today returns the calendar day of the clock as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format("2006-01-02")
}

// DaysAgo returns the calendar day n days before the clock's day.
func (c *Clock) DaysAgo(n int) string {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d-n, 0, 0, 0, 0, c.Now().Location()).Format("2006-01-02")
}
