// Package clock provides a mockable time source for testing.
// In production, it simply wraps the time package. For tests, use MockClock:
// code that polls with Sleep can be driven without real waiting.
package clock

import (
	"sync"
	"time"
)

// Clock is the interface for time operations.
// Use package-level functions for convenience, or inject a Clock for testing.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(d time.Duration)
}

// --- Real Clock (simple wrapper) ---

// RealClock provides the actual system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Sleep pauses the calling goroutine for d.
func (c *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// --- Mock Clock (for testing) ---

// MockClock is a test clock with controllable time. Sleep advances the
// clock instead of blocking and records each requested duration.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
	sleeps  []time.Duration
}

// NewMockClock creates a mock clock set to the given time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

// Now returns the mock time.
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Since returns the duration since t.
func (c *MockClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Sleep advances the mock time by d without blocking.
func (c *MockClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	c.sleeps = append(c.sleeps, d)
}

// Set sets the mock time.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance advances the mock time by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Sleeps returns the durations passed to Sleep, in call order.
func (c *MockClock) Sleeps() []time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}

// --- Package-level convenience functions ---

// Now returns the current system time.
func Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func Since(t time.Time) time.Duration {
	return time.Since(t)
}
