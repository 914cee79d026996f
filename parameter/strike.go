// Package parameter holds tuning values and the per-effect configuration
// surface. Config is an explicit value passed at construction; the registry
// re-reads its provider at every admission, so live changes affect only
// effects created afterwards.
package parameter

import (
	"time"

	"github.com/arclight/strikefx/scene"
)

// Strike geometry
const (
	// DefaultLineSegments is the segment count of the main stroke
	DefaultLineSegments = 24

	// DefaultJitterAmount is the perpendicular jitter amplitude as a
	// fraction of world radius
	DefaultJitterAmount = 0.012

	// JitterCenterPull is the damping fraction of the jitter random walk;
	// keeps interior offsets from drifting away from the chord
	JitterCenterPull = 0.3

	// DefaultStartAltitude is the cloud anchor height as a fraction of
	// world radius above the surface
	DefaultStartAltitude = 0.08

	// BranchAnchorMargin is the fraction of vertices at each end of the
	// path that never root a branch
	BranchAnchorMargin = 0.15

	DefaultBranchChance = 0.35
	DefaultMaxBranches  = 4

	// BranchLengthFactor scales branch reach relative to world radius
	BranchLengthFactor = 0.025
)

// Strike animation
const (
	DefaultDuration        = 1500 * time.Millisecond
	DefaultFadeOutDuration = 500 * time.Millisecond
	DefaultSpeedFactor     = 1.0

	// MinSpeedFactor is the clamp floor; a zero or negative speed would
	// leave effects animating forever
	MinSpeedFactor = 0.01
)

// Marker decay
const (
	DefaultMarkerFadeIn    = 300 * time.Millisecond
	DefaultMarkerFadeStart = 10 * time.Second
	DefaultMarkerMaxAge    = 60 * time.Second
	DefaultMarkerRadius    = 0.01
	DefaultMarkerOpacity   = 0.85
)

// Capacity bounds
const (
	DefaultMaxActiveAnimations = 10
	DefaultMaxDisplayedStrikes = 1000
)

// Config is the named-option surface read fresh at effect creation time
type Config struct {
	MaxActiveAnimations int
	MaxDisplayedStrikes int

	LineSegments  int
	JitterAmount  float64
	BranchChance  float64
	MaxBranches   int
	StartAltitude float64

	Duration        time.Duration
	FadeOutDuration time.Duration
	SpeedFactor     float64

	// ShowStrike disables the bolt itself when false; markers then fade
	// in instantly so they remain the sole visible indicator
	ShowStrike bool

	MarkerFadeIn    time.Duration
	MarkerFadeStart time.Duration
	MarkerMaxAge    time.Duration
	MarkerRadius    float64
	MarkerColor     scene.Color
	MarkerOpacity   float64

	StrikeColor scene.Color
}

// Defaults returns a fully populated configuration
func Defaults() Config {
	return Config{
		MaxActiveAnimations: DefaultMaxActiveAnimations,
		MaxDisplayedStrikes: DefaultMaxDisplayedStrikes,
		LineSegments:        DefaultLineSegments,
		JitterAmount:        DefaultJitterAmount,
		BranchChance:        DefaultBranchChance,
		MaxBranches:         DefaultMaxBranches,
		StartAltitude:       DefaultStartAltitude,
		Duration:            DefaultDuration,
		FadeOutDuration:     DefaultFadeOutDuration,
		SpeedFactor:         DefaultSpeedFactor,
		ShowStrike:          true,
		MarkerFadeIn:        DefaultMarkerFadeIn,
		MarkerFadeStart:     DefaultMarkerFadeStart,
		MarkerMaxAge:        DefaultMarkerMaxAge,
		MarkerRadius:        DefaultMarkerRadius,
		MarkerColor:         scene.Color{R: 255, G: 120, B: 40},
		MarkerOpacity:       DefaultMarkerOpacity,
		StrikeColor:         scene.Color{R: 180, G: 220, B: 255},
	}
}

// Sanitize returns a copy with invalid values clamped to safe defaults.
// Bad configuration never errors.
func (c Config) Sanitize() Config {
	if c.MaxActiveAnimations <= 0 {
		c.MaxActiveAnimations = DefaultMaxActiveAnimations
	}
	if c.MaxDisplayedStrikes <= 0 {
		c.MaxDisplayedStrikes = DefaultMaxDisplayedStrikes
	}
	if c.LineSegments < 1 {
		c.LineSegments = DefaultLineSegments
	}
	if c.JitterAmount < 0 {
		c.JitterAmount = 0
	}
	if c.BranchChance < 0 {
		c.BranchChance = 0
	}
	if c.BranchChance > 1 {
		c.BranchChance = 1
	}
	if c.MaxBranches < 0 {
		c.MaxBranches = 0
	}
	if c.Duration <= 0 {
		c.Duration = DefaultDuration
	}
	if c.FadeOutDuration < 0 {
		c.FadeOutDuration = 0
	}
	if c.SpeedFactor < MinSpeedFactor {
		c.SpeedFactor = MinSpeedFactor
	}
	if c.MarkerFadeIn < 0 {
		c.MarkerFadeIn = 0
	}
	if c.MarkerFadeStart < 0 {
		c.MarkerFadeStart = DefaultMarkerFadeStart
	}
	if c.MarkerMaxAge <= 0 {
		c.MarkerMaxAge = DefaultMarkerMaxAge
	}
	if c.MarkerMaxAge < c.MarkerFadeStart {
		c.MarkerMaxAge = c.MarkerFadeStart
	}
	if c.MarkerRadius <= 0 {
		c.MarkerRadius = DefaultMarkerRadius
	}
	if c.MarkerOpacity < 0 {
		c.MarkerOpacity = 0
	}
	if c.MarkerOpacity > 1 {
		c.MarkerOpacity = 1
	}
	return c
}

// Provider supplies the configuration in force at a given moment.
// The registry calls it once per admission.
type Provider func() Config

// Static wraps a fixed configuration in a Provider
func Static(c Config) Provider {
	c = c.Sanitize()
	return func() Config { return c }
}
