package feed

import (
	"fmt"
	"sync"
	"time"

	"github.com/arclight/strikefx/vmath"
)

// SyntheticSource generates random strikes at a fixed cadence. Used by the
// sandbox and by soak tests; seeded, so a given seed replays the same
// storm.
type SyntheticSource struct {
	interval time.Duration
	seed     uint64
}

func NewSyntheticSource(interval time.Duration, seed uint64) *SyntheticSource {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &SyntheticSource{interval: interval, seed: seed}
}

func (s *SyntheticSource) Subscribe(fn Callback) (cancel func()) {
	done := make(chan struct{})
	var once sync.Once

	go func() {
		rng := vmath.NewFastRand(s.seed)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		seq := 0
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				seq++
				fn(StrikeEvent{
					ID:        fmt.Sprintf("syn-%d-%d", s.seed, seq),
					Lat:       rng.Range(-65, 65),
					Lng:       rng.Range(-180, 180),
					Time:      now,
					Intensity: rng.Float64(),
				})
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
