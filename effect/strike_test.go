package effect

import (
	"testing"
	"time"

	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/vmath"
)

func testStrike(t *testing.T, cfg parameter.Config, container *scene.Container) *Strike {
	t.Helper()
	s := NewStrike("s1", 42, vmath.Vec3{Y: 1.08}, vmath.Vec3{Y: 1}, 1.0, cfg.Sanitize(), container, phaseEpoch)
	s.Initialize()
	return s
}

// TestStrikeInitializeAllocatesVisuals verifies the main stroke and every
// branch register one line mesh each
func TestStrikeInitializeAllocatesVisuals(t *testing.T) {
	container := scene.NewContainer()
	s := testStrike(t, parameter.Defaults(), container)

	want := 1 + len(s.Branches())
	if container.Count() != want {
		t.Errorf("Expected %d visuals, got %d", want, container.Count())
	}
	if len(s.Path()) != parameter.DefaultLineSegments+1 {
		t.Errorf("Expected %d path points, got %d", parameter.DefaultLineSegments+1, len(s.Path()))
	}
}

// TestStrikeHiddenBoltAllocatesNothing verifies ShowStrike=false keeps
// the clock running without any scene resources
func TestStrikeHiddenBoltAllocatesNothing(t *testing.T) {
	cfg := parameter.Defaults()
	cfg.ShowStrike = false
	container := scene.NewContainer()
	s := testStrike(t, cfg, container)

	if container.Count() != 0 {
		t.Errorf("Expected no visuals with bolts disabled, got %d", container.Count())
	}
	if !s.Update(phaseEpoch.Add(100 * time.Millisecond)) {
		t.Error("Expected hidden strike to keep ticking")
	}
}

// TestStrikeAlphaTracksClock verifies visuals follow the phase clock's
// opacity each tick
func TestStrikeAlphaTracksClock(t *testing.T) {
	container := scene.NewContainer()
	s := testStrike(t, parameter.Defaults(), container)

	// Defaults: 1500ms duration, 500ms fade-out → hold spans [500,1000)
	if !s.Update(phaseEpoch.Add(700 * time.Millisecond)) {
		t.Fatal("Expected alive in hold phase")
	}
	if s.Alpha() != 1 {
		t.Errorf("Expected full alpha in hold, got %v", s.Alpha())
	}
	for _, v := range container.Snapshot() {
		if v.Alpha() != 1 {
			t.Errorf("Expected visual at alpha 1, got %v", v.Alpha())
		}
	}
}

// TestStrikeForcedInactive verifies a strike outside the active set is
// driven to alpha 0 while still reporting alive
func TestStrikeForcedInactive(t *testing.T) {
	container := scene.NewContainer()
	s := testStrike(t, parameter.Defaults(), container)

	s.SetAllowed(false)
	if !s.Update(phaseEpoch.Add(700 * time.Millisecond)) {
		t.Fatal("Expected forced-inactive strike to stay alive")
	}
	if s.Alpha() != 0 {
		t.Errorf("Expected alpha 0 while excluded, got %v", s.Alpha())
	}

	s.SetAllowed(true)
	s.Update(phaseEpoch.Add(750 * time.Millisecond))
	if s.Alpha() != 1 {
		t.Errorf("Expected alpha restored on re-inclusion, got %v", s.Alpha())
	}
}

// TestStrikeNaturalExpiryReleasesResources verifies expiry disposes every
// owned visual exactly once
func TestStrikeNaturalExpiryReleasesResources(t *testing.T) {
	container := scene.NewContainer()
	s := testStrike(t, parameter.Defaults(), container)

	if s.Update(phaseEpoch.Add(2 * time.Second)) {
		t.Fatal("Expected expiry past duration")
	}
	if container.Count() != 0 {
		t.Errorf("Expected empty container after expiry, got %d", container.Count())
	}
	if !s.Terminated() {
		t.Error("Expected terminated state after expiry")
	}
}

// TestStrikeTerminateIdempotent verifies repeated forced termination and
// stale updates are harmless
func TestStrikeTerminateIdempotent(t *testing.T) {
	container := scene.NewContainer()
	s := testStrike(t, parameter.Defaults(), container)
	visuals := container.Snapshot()

	s.Terminate()
	s.Terminate()
	s.Dispose()

	if container.Count() != 0 {
		t.Errorf("Expected empty container, got %d", container.Count())
	}
	for _, v := range visuals {
		if v.Alpha() != 0 {
			t.Errorf("Expected disposed visual at alpha 0, got %v", v.Alpha())
		}
	}
	if s.Update(phaseEpoch.Add(100 * time.Millisecond)) {
		t.Error("Expected stale update to report not-alive")
	}
	if s.Alpha() != 0 {
		t.Errorf("Expected alpha 0 after termination, got %v", s.Alpha())
	}
}
