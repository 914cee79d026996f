// Package bolt generates the procedural geometry of a strike: the main
// stroke polyline and its secondary branches. Generation is deterministic:
// the same seed and inputs always produce byte-identical output.
package bolt

import (
	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/vmath"
)

// GeneratePath builds the main stroke from origin (cloud anchor) to
// terminus (surface anchor) as segments+1 ordered points.
//
// Interior points carry a damped random walk offset in the plane
// perpendicular to the origin→terminus chord: each offset is the previous
// one pulled back toward center plus fresh uniform noise in [-jitter,
// jitter]. The pull keeps the walk bounded without the stroke ever looking
// like independent per-vertex noise. Endpoints are exact.
func GeneratePath(seed uint64, origin, terminus vmath.Vec3, segments int, jitter float64) []vmath.Vec3 {
	if segments < 1 {
		segments = 1
	}
	if jitter < 0 {
		jitter = 0
	}

	rng := vmath.NewFastRand(seed)
	u, v := vmath.V3PerpBasis(vmath.V3Sub(terminus, origin))

	points := make([]vmath.Vec3, 0, segments+1)
	points = append(points, origin)

	keep := 1 - parameter.JitterCenterPull
	var offU, offV float64
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		base := vmath.V3Lerp(origin, terminus, t)

		offU = offU*keep + rng.Range(-jitter, jitter)
		offV = offV*keep + rng.Range(-jitter, jitter)

		p := vmath.V3Add(base, vmath.V3Add(vmath.V3Scale(u, offU), vmath.V3Scale(v, offV)))
		points = append(points, p)
	}

	points = append(points, terminus)
	return points
}
