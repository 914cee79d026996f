package effect

import (
	"math"
	"testing"
	"time"

	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/vmath"
)

func testMarker(t *testing.T, cfg parameter.Config, container *scene.Container) *Marker {
	t.Helper()
	m := NewMarker("m1", vmath.Vec3{Y: 1}, cfg.Sanitize(), container, phaseEpoch)
	m.Initialize()
	return m
}

// TestMarkerTimeline verifies fade-in, hold at max opacity, linear decay,
// and self-termination at maxAge
func TestMarkerTimeline(t *testing.T) {
	cfg := parameter.Defaults()
	container := scene.NewContainer()
	m := testMarker(t, cfg, container)

	// Mid fade-in (default 300ms)
	if !m.Update(phaseEpoch.Add(150 * time.Millisecond)) {
		t.Fatal("Expected alive mid fade-in")
	}
	if a := m.Alpha(); a <= 0 || a >= cfg.MarkerOpacity {
		t.Errorf("Expected 0 < alpha < %v mid fade-in, got %v", cfg.MarkerOpacity, a)
	}

	// Hold until fadeStart (default 10s)
	m.Update(phaseEpoch.Add(5 * time.Second))
	if m.Alpha() != cfg.MarkerOpacity {
		t.Errorf("Expected hold at %v, got %v", cfg.MarkerOpacity, m.Alpha())
	}

	// Midway through decay (10s → 60s): half opacity
	m.Update(phaseEpoch.Add(35 * time.Second))
	want := cfg.MarkerOpacity * 0.5
	if math.Abs(m.Alpha()-want) > 1e-9 {
		t.Errorf("Expected alpha %v mid-decay, got %v", want, m.Alpha())
	}

	// Past maxAge: self-terminates and releases its disc
	if m.Update(phaseEpoch.Add(61 * time.Second)) {
		t.Error("Expected not-alive past maxAge")
	}
	if container.Count() != 0 {
		t.Errorf("Expected disc released, container has %d", container.Count())
	}
}

// TestMarkerInstantFadeInWhenBoltsHidden verifies markers pop at full
// opacity when the bolt itself is globally disabled
func TestMarkerInstantFadeInWhenBoltsHidden(t *testing.T) {
	cfg := parameter.Defaults()
	cfg.ShowStrike = false
	m := testMarker(t, cfg, scene.NewContainer())

	m.Update(phaseEpoch.Add(time.Millisecond))
	if m.Alpha() != cfg.MarkerOpacity {
		t.Errorf("Expected immediate full opacity, got %v", m.Alpha())
	}
}

// TestMarkerTerminateIdempotent verifies forced termination is repeat-safe
// and stale updates stay dead
func TestMarkerTerminateIdempotent(t *testing.T) {
	container := scene.NewContainer()
	m := testMarker(t, parameter.Defaults(), container)

	m.Terminate()
	m.Terminate()
	if container.Count() != 0 {
		t.Errorf("Expected container empty, got %d", container.Count())
	}
	if m.Update(phaseEpoch.Add(time.Second)) {
		t.Error("Expected stale update to report not-alive")
	}
	if m.Alpha() != 0 {
		t.Errorf("Expected alpha 0, got %v", m.Alpha())
	}
}
