package registry

import (
	"sync"
	"time"
)

// Clock is the injected time source every registry operation derives
// "now" from. Production uses the monotonic system clock; tests drive a
// MockClock by hand.
type Clock interface {
	Now() time.Time
}

// MonotonicClock provides the real system time with monotonic readings
type MonotonicClock struct{}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

func (c *MonotonicClock) Now() time.Time {
	return time.Now()
}

// MockClock is a controllable time source for testing
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
