package effect

import (
	"sync"
	"time"

	"github.com/arclight/strikefx/event"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/vmath"
)

// GroundGlow is the decorative consumer of the synchronization channel: a
// surface disc that lights up under each admitted strike. It never holds a
// reference to the strike itself; it runs an independent phase clock built
// from the broadcast timing triple, which is what keeps the two visuals
// frame-aligned. Each new broadcast preempts whatever was in flight.
type GroundGlow struct {
	mu sync.Mutex

	container *scene.Container
	radius    float64
	color     scene.Color
	opacity   float64

	clock  *PhaseClock
	anchor vmath.Vec3
	disc   *scene.DiscMesh
}

// NewGroundGlow builds the glow and subscribes it to the channel once.
// radius is in world units.
func NewGroundGlow(ch *event.SyncChannel, container *scene.Container, radius float64, color scene.Color, opacity float64) *GroundGlow {
	if opacity <= 0 || opacity > 1 {
		opacity = 0.6
	}
	g := &GroundGlow{
		container: container,
		radius:    radius,
		color:     color,
		opacity:   opacity,
	}
	ch.Subscribe(g.onStrike)
	return g
}

// onStrike replaces any in-flight glow with one timed to the new strike
func (g *GroundGlow) onStrike(s event.StrikeSync) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.anchor = s.Anchor
	g.clock = NewPhaseClock(s.StartTime, s.SpeedFactor, s.Duration)

	if g.disc != nil {
		g.container.Remove(g.disc)
		g.disc.Dispose()
	}
	g.disc = scene.NewDiscMesh(s.Anchor, g.radius, g.color)
	g.container.Add(g.disc)
}

// Update advances the glow; returns false when no glow is in flight
func (g *GroundGlow) Update(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.clock == nil || g.disc == nil {
		return false
	}
	if !g.clock.Update(now) {
		g.container.Remove(g.disc)
		g.disc.Dispose()
		g.disc = nil
		g.clock = nil
		return false
	}
	g.disc.SetAlpha(g.clock.Alpha() * g.opacity)
	return true
}

// Alpha reports the current glow opacity
func (g *GroundGlow) Alpha() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disc == nil {
		return 0
	}
	return g.disc.Alpha()
}

// Anchor returns the surface point of the glow currently in flight
func (g *GroundGlow) Anchor() vmath.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.anchor
}

// Dispose releases the in-flight disc, if any. Idempotent.
func (g *GroundGlow) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disc != nil {
		g.container.Remove(g.disc)
		g.disc.Dispose()
		g.disc = nil
	}
	g.clock = nil
}
