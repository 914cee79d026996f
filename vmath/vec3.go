package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector in world space
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Dist(a, b Vec3) float64 {
	return V3Mag(V3Sub(a, b))
}

func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3Lerp interpolates a→b at t∈[0,1] without clamping
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// V3PerpBasis returns two unit vectors spanning the plane perpendicular to dir.
// dir does not need to be normalized. For a degenerate dir the world X/Z axes
// are returned so callers never divide by zero.
func V3PerpBasis(dir Vec3) (u, v Vec3) {
	n := V3Normalize(dir)
	if n == (Vec3{}) {
		return Vec3{X: 1}, Vec3{Z: 1}
	}

	// Pick the world axis least aligned with dir as the cross seed
	ref := Vec3{Y: 1}
	if math.Abs(n.Y) > 0.99 {
		ref = Vec3{X: 1}
	}

	u = V3Normalize(V3Cross(n, ref))
	v = V3Cross(n, u)
	return u, v
}
