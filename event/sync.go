// Package event carries the cross-effect timing-synchronization channel.
//
// Architecture:
//   - Single global channel per registry, last-write-wins
//   - Publish is fire-and-forget: consumers are invoked synchronously at
//     strike-admission time and never hold a reference to the strike
//   - Consumers subscribe once at construction; a new broadcast preempts
//     whatever phase state they were running
package event

import (
	"sync"
	"time"

	"github.com/arclight/strikefx/vmath"
)

// StrikeSync is the read-only payload a decorative consumer aligns to.
// It carries exactly the timing triple the strike's own phase clock runs
// on, so an independent clock built from it stays frame-aligned.
type StrikeSync struct {
	StrikeID    string
	Anchor      vmath.Vec3
	StartTime   time.Time
	SpeedFactor float64
	Duration    time.Duration
}

// Consumer receives each broadcast payload
type Consumer func(StrikeSync)

// SyncChannel broadcasts StrikeSync payloads to registered consumers
type SyncChannel struct {
	mu        sync.Mutex
	consumers []Consumer
	last      StrikeSync
	hasLast   bool
}

func NewSyncChannel() *SyncChannel {
	return &SyncChannel{}
}

// Subscribe registers a consumer. Nil consumers are ignored.
func (c *SyncChannel) Subscribe(fn Consumer) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.consumers = append(c.consumers, fn)
	c.mu.Unlock()
}

// Publish delivers the payload to every consumer in subscription order.
// The payload replaces any previous one; there is no queue and no replay
// of missed broadcasts.
func (c *SyncChannel) Publish(s StrikeSync) {
	c.mu.Lock()
	c.last = s
	c.hasLast = true
	consumers := make([]Consumer, len(c.consumers))
	copy(consumers, c.consumers)
	c.mu.Unlock()

	for _, fn := range consumers {
		fn(s)
	}
}

// Latest returns the most recently published payload, if any
func (c *SyncChannel) Latest() (StrikeSync, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// ConsumerCount returns the number of registered consumers
func (c *SyncChannel) ConsumerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.consumers)
}
