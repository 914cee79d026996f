// Package audio plays the sandbox's thunder cue: a synthesized noise
// burst with an exponential decay envelope. Entirely optional; with no
// audio device the cue degrades to silence.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/arclight/strikefx/vmath"
)

const thunderSampleRate = beep.SampleRate(44100)

// Thunder owns the speaker and synthesizes one rumble per strike
type Thunder struct {
	mu      sync.Mutex
	enabled bool
	rng     *vmath.FastRand
}

// NewThunder initializes the speaker. Failure is non-fatal: the returned
// cue simply stays silent.
func NewThunder() *Thunder {
	t := &Thunder{rng: vmath.NewFastRand(uint64(time.Now().UnixNano()))}
	if err := speaker.Init(thunderSampleRate, thunderSampleRate.N(100*time.Millisecond)); err == nil {
		t.enabled = true
	}
	return t
}

func (t *Thunder) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Play fires a rumble scaled by strike intensity ∈ [0,1]
func (t *Thunder) Play(intensity float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	if intensity <= 0 || intensity > 1 {
		intensity = 0.5
	}

	dur := time.Duration(200+300*intensity) * time.Millisecond
	total := thunderSampleRate.N(dur)
	speaker.Play(beep.Take(total, newRumble(t.rng.Next(), total, 0.15+0.35*intensity)))
}

// rumble streams white noise under an exponential decay envelope with a
// one-pole low-pass to take the hiss off
type rumble struct {
	rng   *vmath.FastRand
	pos   int
	total int
	amp   float64
	prev  float64
}

func newRumble(seed uint64, total int, amp float64) *rumble {
	return &rumble{rng: vmath.NewFastRand(seed), total: total, amp: amp}
}

func (r *rumble) Stream(samples [][2]float64) (int, bool) {
	if r.pos >= r.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if r.pos >= r.total {
			break
		}
		decay := 1 - float64(r.pos)/float64(r.total)
		raw := (r.rng.Float64()*2 - 1) * r.amp * decay * decay
		r.prev += 0.08 * (raw - r.prev)
		samples[i][0] = r.prev
		samples[i][1] = r.prev
		r.pos++
		n++
	}
	return n, true
}

func (r *rumble) Err() error { return nil }
