package scene

import (
	"sync"
)

// Container tracks the visuals currently registered for drawing.
// Effects add on creation and remove on disposal; a renderer snapshots the
// set once per frame. Admission can run off a network goroutine, so the
// container guards itself.
type Container struct {
	mu      sync.Mutex
	visuals []Visual
}

func NewContainer() *Container {
	return &Container{}
}

// Add registers a visual for drawing. Nil is ignored.
func (c *Container) Add(v Visual) {
	if v == nil {
		return
	}
	c.mu.Lock()
	c.visuals = append(c.visuals, v)
	c.mu.Unlock()
}

// Remove detaches a visual without disposing it; the owner disposes
func (c *Container) Remove(v Visual) {
	if v == nil {
		return
	}
	c.mu.Lock()
	for i, cur := range c.visuals {
		if cur == v {
			c.visuals = append(c.visuals[:i], c.visuals[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
}

// Snapshot returns a copy of the registered visuals in insertion order
func (c *Container) Snapshot() []Visual {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Visual, len(c.visuals))
	copy(out, c.visuals)
	return out
}

func (c *Container) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.visuals)
}
