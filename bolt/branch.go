package bolt

import (
	"math"

	"github.com/arclight/strikefx/parameter"
	"github.com/arclight/strikefx/vmath"
)

// Branch is a short secondary fork rooted at an interior path vertex.
// It owns its own polyline so it can be styled and disposed independently
// of the main stroke.
type Branch struct {
	Root   int
	Points []vmath.Vec3
}

// GenerateBranches draws a Bernoulli(chance) trial at each eligible vertex
// of the main path and emits forks until maxBranches is reached.
//
// Vertices within the margin at either end never root a branch, so forks
// stay away from both anchors. Fork direction is sideways off the stroke
// and tilts increasingly downward (toward the terminus) the closer the
// root sits to the surface. worldScale sets the reach of a fork.
func GenerateBranches(path []vmath.Vec3, seed uint64, chance float64, maxBranches int, worldScale float64) []Branch {
	n := len(path) - 1
	if n < 2 || maxBranches <= 0 || chance <= 0 {
		return nil
	}

	margin := int(math.Ceil(parameter.BranchAnchorMargin * float64(n)))
	if margin < 1 {
		margin = 1
	}
	first, last := margin, n-margin
	if first > last {
		return nil
	}

	rng := vmath.NewFastRand(seed)
	down := vmath.V3Normalize(vmath.V3Sub(path[n], path[0]))
	u, v := vmath.V3PerpBasis(down)

	var branches []Branch
	for i := first; i <= last; i++ {
		if len(branches) >= maxBranches {
			break
		}
		if !rng.Chance(chance) {
			continue
		}
		branches = append(branches, buildBranch(rng, path, i, n, down, u, v, worldScale))
	}
	return branches
}

func buildBranch(rng *vmath.FastRand, path []vmath.Vec3, root, n int, down, u, v vmath.Vec3, worldScale float64) Branch {
	t := float64(root) / float64(n)

	// Random sideways heading in the perpendicular plane
	theta := rng.Range(0, 2*math.Pi)
	side := vmath.V3Add(
		vmath.V3Scale(u, math.Cos(theta)),
		vmath.V3Scale(v, math.Sin(theta)),
	)

	// Lower roots point more toward the surface than outward
	dir := vmath.V3Normalize(vmath.V3Add(
		vmath.V3Scale(side, 1-0.6*t),
		vmath.V3Scale(down, 0.3+0.7*t),
	))

	reach := parameter.BranchLengthFactor * worldScale * rng.Range(0.5, 1.5)
	start := path[root]
	end := vmath.V3Add(start, vmath.V3Scale(dir, reach))

	interior := 1 + rng.Intn(3)
	points := make([]vmath.Vec3, 0, interior+2)
	points = append(points, start)
	for k := 1; k <= interior; k++ {
		f := float64(k) / float64(interior+1)
		p := vmath.V3Lerp(start, end, f)
		wobble := reach * 0.2
		p = vmath.V3Add(p, vmath.V3Add(
			vmath.V3Scale(u, rng.Range(-wobble, wobble)),
			vmath.V3Scale(v, rng.Range(-wobble, wobble)),
		))
		points = append(points, p)
	}
	points = append(points, end)

	return Branch{Root: root, Points: points}
}
