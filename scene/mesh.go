package scene

import (
	"math"
	"sync/atomic"

	"github.com/arclight/strikefx/vmath"
)

// LineMesh is a polyline stroke (main bolt or a single branch). Meshes
// start invisible; the owning effect raises alpha on its first tick.
// Alpha and disposal are atomic and the vertex slice is immutable after
// construction, so admission on a feed goroutine and reads on the render
// goroutine never race.
type LineMesh struct {
	points    []vmath.Vec3
	color     Color
	alphaBits atomic.Uint64
	disposed  atomic.Bool
}

func NewLineMesh(points []vmath.Vec3, color Color) *LineMesh {
	return &LineMesh{points: points, color: color}
}

// Points returns the polyline vertices; nil after disposal
func (m *LineMesh) Points() []vmath.Vec3 {
	if m.disposed.Load() {
		return nil
	}
	return m.points
}

func (m *LineMesh) Color() Color { return m.color }

func (m *LineMesh) SetAlpha(alpha float64) {
	if m.disposed.Load() {
		return
	}
	m.alphaBits.Store(math.Float64bits(clampAlpha(alpha)))
}

func (m *LineMesh) Alpha() float64 {
	if m.disposed.Load() {
		return 0
	}
	return math.Float64frombits(m.alphaBits.Load())
}

// Dispose retires the mesh. Idempotent; a disposed mesh reads as
// invisible and ignores further alpha writes.
func (m *LineMesh) Dispose() {
	if m.disposed.CompareAndSwap(false, true) {
		m.alphaBits.Store(0)
	}
}

func (m *LineMesh) Disposed() bool { return m.disposed.Load() }

// DiscMesh is a flat disc on the surface (impact marker or ground glow).
// Same lifecycle and atomics as LineMesh.
type DiscMesh struct {
	center    vmath.Vec3
	radius    float64
	color     Color
	alphaBits atomic.Uint64
	disposed  atomic.Bool
}

func NewDiscMesh(center vmath.Vec3, radius float64, color Color) *DiscMesh {
	return &DiscMesh{center: center, radius: radius, color: color}
}

func (m *DiscMesh) Center() vmath.Vec3 { return m.center }
func (m *DiscMesh) Radius() float64    { return m.radius }
func (m *DiscMesh) Color() Color       { return m.color }

func (m *DiscMesh) SetAlpha(alpha float64) {
	if m.disposed.Load() {
		return
	}
	m.alphaBits.Store(math.Float64bits(clampAlpha(alpha)))
}

func (m *DiscMesh) Alpha() float64 {
	if m.disposed.Load() {
		return 0
	}
	return math.Float64frombits(m.alphaBits.Load())
}

func (m *DiscMesh) Dispose() {
	if m.disposed.CompareAndSwap(false, true) {
		m.alphaBits.Store(0)
	}
}

func (m *DiscMesh) Disposed() bool { return m.disposed.Load() }
