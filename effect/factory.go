package effect

import (
	"time"

	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/scene"
	"github.com/arclight/strikefx/vmath"
)

// Kind tags the concrete effect variant a blueprint builds
type Kind uint8

const (
	KindStrike Kind = iota
	KindMarker
)

// Blueprint carries everything needed to construct a registry-owned
// effect. The ground glow is not built here: it is host-constructed and
// fed by the sync channel instead of the registry.
type Blueprint struct {
	Kind      Kind
	ID        string
	Seed      uint64
	Origin    vmath.Vec3
	Terminus  vmath.Vec3
	Intensity float64
	Config    parameter.Config
	Container *scene.Container
	Now       time.Time
}

// Build selects the concrete variant by tag. Unknown kinds return nil.
func Build(bp Blueprint) Effect {
	switch bp.Kind {
	case KindStrike:
		return NewStrike(bp.ID, bp.Seed, bp.Origin, bp.Terminus, bp.Intensity, bp.Config, bp.Container, bp.Now)
	case KindMarker:
		return NewMarker(bp.ID, bp.Terminus, bp.Config, bp.Container, bp.Now)
	default:
		return nil
	}
}
