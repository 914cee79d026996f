package effect

import (
	"time"

	"github.com/arclight/strikefx/vmath"
)

// Effect is the shared lifecycle of every concrete variant. The registry
// (and any other host) only ever talks to this interface.
type Effect interface {
	// ID is the strike id the effect is keyed by
	ID() string

	// Initialize allocates geometry and scene resources. Must be called
	// exactly once, before the first Update.
	Initialize()

	// Update advances the effect to now and returns whether it is still
	// alive. A false return means the effect has released (or is about
	// to release) its resources and must be removed.
	Update(now time.Time) bool

	// PositionOnSurface is the effect's anchor point on the surface
	PositionOnSurface() vmath.Vec3

	// Terminate is the forced, immediate, idempotent cut-off: alpha
	// drops to zero and owned resources are released synchronously,
	// bypassing any fade.
	Terminate()

	// Dispose releases owned resources without further state changes.
	// Idempotent; Terminate implies Dispose.
	Dispose()
}
