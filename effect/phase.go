// Package effect implements the animated visuals of a strike: the bolt
// itself, its long-lived surface marker, and the decorative ground glow
// that aligns to the bolt over the synchronization channel.
package effect

import (
	"time"

	"github.com/arclight/strikefx/parameter"
)

// Phase is the animation state of a transient effect
type Phase uint8

const (
	PhaseFadeIn Phase = iota
	PhaseHold
	PhaseFadeOut
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseFadeIn:
		return "fade-in"
	case PhaseHold:
		return "hold"
	case PhaseFadeOut:
		return "fade-out"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// PhaseClock is the per-effect animation state machine. It is pure
// recomputation from elapsed time: scaledElapsed = (now − startTime) ×
// speedFactor, mapped onto FadeIn → Hold → FadeOut → Terminated.
//
// Speed changes apply immediately and non-destructively: the start time
// never moves, so doubling the speed halves the remaining wall-clock
// duration without altering the alpha already reached at a given
// phase-fraction.
type PhaseClock struct {
	startTime   time.Time
	speedFactor float64
	duration    time.Duration

	fadeIn  time.Duration
	fadeOut time.Duration

	phase Phase
	alpha float64
}

// NewPhaseClock builds a clock with the equal-thirds phase policy
func NewPhaseClock(start time.Time, speedFactor float64, duration time.Duration) *PhaseClock {
	return NewPhaseClockWithFade(start, speedFactor, duration, duration/3)
}

// NewPhaseClockWithFade builds a clock whose fade-out length is explicit.
// The remainder of the duration is split evenly between fade-in and hold.
// A fade-out of exactly 0 is a hard cutoff: the effect holds at full
// alpha until its duration elapses, then vanishes.
func NewPhaseClockWithFade(start time.Time, speedFactor float64, duration, fadeOut time.Duration) *PhaseClock {
	if duration <= 0 {
		duration = parameter.DefaultDuration
	}
	if fadeOut < 0 || fadeOut > duration {
		fadeOut = duration / 3
	}
	return &PhaseClock{
		startTime:   start,
		speedFactor: clampSpeed(speedFactor),
		duration:    duration,
		fadeIn:      (duration - fadeOut) / 2,
		fadeOut:     fadeOut,
		phase:       PhaseFadeIn,
	}
}

func clampSpeed(f float64) float64 {
	if f < parameter.MinSpeedFactor {
		return parameter.MinSpeedFactor
	}
	return f
}

// Update advances the clock to now. Returns false once the effect is past
// its duration (or was force-terminated); callers remove and dispose on
// false. Updating a terminated clock is an idempotent no-op.
func (pc *PhaseClock) Update(now time.Time) bool {
	if pc.phase == PhaseTerminated {
		pc.alpha = 0
		return false
	}

	scaled := time.Duration(float64(now.Sub(pc.startTime)) * pc.speedFactor)
	if scaled < 0 {
		scaled = 0
	}
	if scaled > pc.duration {
		pc.phase = PhaseTerminated
		pc.alpha = 0
		return false
	}

	holdEnd := pc.duration - pc.fadeOut
	switch {
	case scaled < pc.fadeIn:
		pc.phase = PhaseFadeIn
		pc.alpha = float64(scaled) / float64(pc.fadeIn)
	case scaled < holdEnd || pc.fadeOut <= 0:
		pc.phase = PhaseHold
		pc.alpha = 1
	default:
		pc.phase = PhaseFadeOut
		pc.alpha = 1 - float64(scaled-holdEnd)/float64(pc.fadeOut)
		if pc.alpha < 0 {
			pc.alpha = 0
		}
	}
	return true
}

// SetSpeed changes the speed factor mid-flight. The start time is kept, so
// the phase-fraction shape is preserved under the new rate.
func (pc *PhaseClock) SetSpeed(f float64) {
	pc.speedFactor = clampSpeed(f)
}

// Terminate forces the clock straight to Terminated from any state.
// Idempotent.
func (pc *PhaseClock) Terminate() {
	pc.phase = PhaseTerminated
	pc.alpha = 0
}

func (pc *PhaseClock) Phase() Phase            { return pc.phase }
func (pc *PhaseClock) Alpha() float64          { return pc.alpha }
func (pc *PhaseClock) StartTime() time.Time    { return pc.startTime }
func (pc *PhaseClock) SpeedFactor() float64    { return pc.speedFactor }
func (pc *PhaseClock) Duration() time.Duration { return pc.duration }
