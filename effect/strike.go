package effect

import (
	"sync/atomic"
	"time"

	"github.com/arclight/strikefx/bolt"
	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/vmath"
)

// Strike is the primary bolt effect: a generated main stroke, its
// branches, a phase clock, and the scene resources they render through.
type Strike struct {
	id   string
	seed uint64
	cfg  parameter.Config

	origin   vmath.Vec3
	terminus vmath.Vec3

	clock   *PhaseClock
	tracker *scene.Tracker

	path     []vmath.Vec3
	branches []bolt.Branch

	// intensity scales peak alpha; 0 events get a sensible floor
	intensity float64

	// allowed mirrors membership in the registry's active set. A strike
	// outside the set keeps ticking but renders at alpha 0 until it is
	// physically evicted.
	allowed bool

	terminated atomic.Bool
}

// NewStrike builds an uninitialized strike effect. Geometry and scene
// resources are allocated by Initialize.
func NewStrike(id string, seed uint64, origin, terminus vmath.Vec3, intensity float64, cfg parameter.Config, container *scene.Container, start time.Time) *Strike {
	if intensity <= 0 || intensity > 1 {
		intensity = 1
	}
	return &Strike{
		id:        id,
		seed:      seed,
		cfg:       cfg,
		origin:    origin,
		terminus:  terminus,
		intensity: 0.5 + 0.5*intensity,
		allowed:   true,
		clock:     NewPhaseClockWithFade(start, cfg.SpeedFactor, cfg.Duration, cfg.FadeOutDuration),
		tracker:   scene.NewTracker(container),
	}
}

func (s *Strike) ID() string { return s.id }

// Initialize generates the path and branch geometry and registers one
// line mesh per stroke with the scene. With ShowStrike off no visuals are
// allocated; the strike still runs its clock so the marker timing and the
// sync broadcast stay identical.
func (s *Strike) Initialize() {
	worldScale := vmath.V3Mag(s.terminus)
	if worldScale == 0 {
		worldScale = 1
	}

	s.path = bolt.GeneratePath(s.seed, s.origin, s.terminus, s.cfg.LineSegments, s.cfg.JitterAmount*worldScale)
	s.branches = bolt.GenerateBranches(s.path, s.seed+1, s.cfg.BranchChance, s.cfg.MaxBranches, worldScale)

	if !s.cfg.ShowStrike {
		return
	}

	// Meshes are born invisible, so nothing flashes between registration
	// and the first tick
	s.tracker.Track(scene.NewLineMesh(s.path, s.cfg.StrikeColor))
	for _, b := range s.branches {
		s.tracker.Track(scene.NewLineMesh(b.Points, s.cfg.StrikeColor))
	}
}

func (s *Strike) Update(now time.Time) bool {
	if s.terminated.Load() {
		return false
	}

	if !s.clock.Update(now) {
		s.Terminate()
		return false
	}

	alpha := s.clock.Alpha() * s.intensity
	if !s.allowed {
		alpha = 0
	}
	s.tracker.SetAlpha(alpha)
	return true
}

func (s *Strike) PositionOnSurface() vmath.Vec3 { return s.terminus }

// SetAllowed marks whether the strike is inside the registry's active set
func (s *Strike) SetAllowed(allowed bool) { s.allowed = allowed }

// SetSpeed rescales the animation mid-flight without resetting progress
func (s *Strike) SetSpeed(f float64) { s.clock.SetSpeed(f) }

func (s *Strike) Terminate() {
	if s.terminated.CompareAndSwap(false, true) {
		s.clock.Terminate()
		s.tracker.ReleaseAll()
	}
}

func (s *Strike) Dispose() { s.Terminate() }

// Clock exposes the timing triple for the sync broadcast
func (s *Strike) Clock() *PhaseClock { return s.clock }

// Path returns the generated main stroke; empty before Initialize
func (s *Strike) Path() []vmath.Vec3 { return s.path }

// Branches returns the generated forks; empty before Initialize
func (s *Strike) Branches() []bolt.Branch { return s.branches }

// Alpha reports the current composite opacity
func (s *Strike) Alpha() float64 {
	if s.terminated.Load() || !s.allowed {
		return 0
	}
	return s.clock.Alpha() * s.intensity
}

// Terminated reports whether the strike has been cut off or expired
func (s *Strike) Terminated() bool { return s.terminated.Load() }
