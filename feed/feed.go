// Package feed supplies the upstream stream of strike events. Sources
// push events from their own goroutines; consumers must tolerate
// duplicate ids (replace semantics downstream) and out-of-order arrival.
package feed

import (
	"time"
)

// StrikeEvent is a single upstream strike notification. Immutable.
type StrikeEvent struct {
	ID  string
	Lat float64
	Lng float64

	// Time is the strike's own timestamp as reported upstream
	Time time.Time

	// Intensity is a normalized strength in [0,1]; 0 means unreported
	Intensity float64
}

// Callback receives pushed events. It runs on the source's goroutine and
// must only perform synchronous state mutation, never long blocking work.
type Callback func(StrikeEvent)

// Source is an async push stream of strike events
type Source interface {
	// Subscribe starts delivery to fn and returns a cancel func that
	// stops it. Cancel is idempotent.
	Subscribe(fn Callback) (cancel func())
}
