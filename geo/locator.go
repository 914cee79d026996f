// Package geo maps geographic coordinates into world space.
package geo

import (
	"math"

	"github.com/arclight/strikefx/vmath"
)

// Locator converts a geographic coordinate to a world-space point.
// altitudeFraction is relative to the surface radius: 0 places the point on
// the surface, 0.05 five percent of a radius above it.
type Locator interface {
	Locate(lat, lng, altitudeFraction float64) vmath.Vec3
	Radius() float64
}

// SphereLocator places points on a Y-up sphere centered at the origin
type SphereLocator struct {
	radius float64
}

func NewSphereLocator(radius float64) *SphereLocator {
	if radius <= 0 {
		radius = 1
	}
	return &SphereLocator{radius: radius}
}

func (s *SphereLocator) Radius() float64 {
	return s.radius
}

func (s *SphereLocator) Locate(lat, lng, altitudeFraction float64) vmath.Vec3 {
	r := s.radius * (1 + altitudeFraction)
	phi := (90 - lat) * math.Pi / 180
	theta := (lng + 180) * math.Pi / 180

	return vmath.Vec3{
		X: -r * math.Sin(phi) * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Sin(theta),
	}
}
