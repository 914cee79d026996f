package scene

import "sync"

// Tracker is the shared resource-lifecycle helper concrete effects embed.
// It pairs every tracked visual with the container it was registered in so
// ReleaseAll can detach and dispose the whole set in one call, exactly
// once. The owned set is mutex-guarded: admission tracks visuals on the
// feed goroutine while ticks and evictions touch them elsewhere.
type Tracker struct {
	mu        sync.Mutex
	container *Container
	owned     []Visual
}

func NewTracker(container *Container) *Tracker {
	return &Tracker{container: container}
}

// Track registers the visual with the container and takes ownership of it
func (t *Tracker) Track(v Visual) {
	if v == nil {
		return
	}
	if t.container != nil {
		t.container.Add(v)
	}
	t.mu.Lock()
	t.owned = append(t.owned, v)
	t.mu.Unlock()
}

// SetAlpha applies the same opacity to every owned visual
func (t *Tracker) SetAlpha(alpha float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range t.owned {
		v.SetAlpha(alpha)
	}
}

// ReleaseAll detaches and disposes every owned visual. Safe to call more
// than once; the second call sees an empty owned set.
func (t *Tracker) ReleaseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, v := range t.owned {
		if t.container != nil {
			t.container.Remove(v)
		}
		v.Dispose()
	}
	t.owned = nil
}

// Owned returns how many visuals the tracker currently holds
func (t *Tracker) Owned() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.owned)
}
