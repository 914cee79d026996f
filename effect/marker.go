package effect

import (
	"sync/atomic"
	"time"

	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/vmath"
)

// Marker is the long-lived surface companion of a strike. It runs its own
// slow timeline, independent of the bolt's phase clock: fade in, hold at
// max opacity until fadeStart, then decay linearly to zero at maxAge.
type Marker struct {
	id        string
	createdAt time.Time

	fadeIn    time.Duration
	fadeStart time.Duration
	maxAge    time.Duration
	opacity   float64

	center  vmath.Vec3
	radius  float64
	color   scene.Color
	tracker *scene.Tracker

	alpha      float64
	terminated atomic.Bool
}

// NewMarker builds an uninitialized marker. When the bolt is globally
// disabled the fade-in collapses to zero so the marker appears at full
// opacity immediately and stays the only visible trace of the strike.
func NewMarker(id string, center vmath.Vec3, cfg parameter.Config, container *scene.Container, createdAt time.Time) *Marker {
	fadeIn := cfg.MarkerFadeIn
	if !cfg.ShowStrike {
		fadeIn = 0
	}
	return &Marker{
		id:        id,
		createdAt: createdAt,
		fadeIn:    fadeIn,
		fadeStart: cfg.MarkerFadeStart,
		maxAge:    cfg.MarkerMaxAge,
		opacity:   cfg.MarkerOpacity,
		center:    center,
		radius:    cfg.MarkerRadius * markerWorldScale(center),
		color:     cfg.MarkerColor,
		tracker:   scene.NewTracker(container),
	}
}

func markerWorldScale(center vmath.Vec3) float64 {
	if s := vmath.V3Mag(center); s > 0 {
		return s
	}
	return 1
}

func (m *Marker) ID() string { return m.id }

func (m *Marker) Initialize() {
	m.tracker.Track(scene.NewDiscMesh(m.center, m.radius, m.color))
}

// Update recomputes opacity from age. Returns false once the marker has
// outlived maxAge (self-termination) or was forcibly terminated.
func (m *Marker) Update(now time.Time) bool {
	if m.terminated.Load() {
		return false
	}

	age := now.Sub(m.createdAt)
	if age < 0 {
		age = 0
	}
	if age > m.maxAge {
		m.Terminate()
		return false
	}

	switch {
	case m.fadeIn > 0 && age < m.fadeIn:
		m.alpha = m.opacity * float64(age) / float64(m.fadeIn)
	case age < m.fadeStart:
		m.alpha = m.opacity
	case m.maxAge <= m.fadeStart:
		m.alpha = 0
	default:
		decay := float64(age-m.fadeStart) / float64(m.maxAge-m.fadeStart)
		m.alpha = m.opacity * (1 - decay)
		if m.alpha < 0 {
			m.alpha = 0
		}
	}
	m.tracker.SetAlpha(m.alpha)
	return true
}

func (m *Marker) PositionOnSurface() vmath.Vec3 { return m.center }

func (m *Marker) CreatedAt() time.Time { return m.createdAt }

func (m *Marker) Alpha() float64 {
	if m.terminated.Load() {
		return 0
	}
	return m.alpha
}

func (m *Marker) Terminate() {
	if m.terminated.CompareAndSwap(false, true) {
		m.alpha = 0
		m.tracker.ReleaseAll()
	}
}

func (m *Marker) Dispose() { m.Terminate() }

func (m *Marker) Terminated() bool { return m.terminated.Load() }
