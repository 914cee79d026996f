// Package scene holds the render-host collaborator surface: disposable
// visual resources and the container they are registered with. The core
// allocates meshes, a host (or the sandbox renderer) draws whatever the
// container holds each frame.
package scene

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// Disposable is a visual resource the owner must release exactly once
type Disposable interface {
	Dispose()
}

// Visual is a renderable resource registered with a Container.
// SetAlpha drives per-frame opacity; values outside [0,1] are clamped.
type Visual interface {
	Disposable
	SetAlpha(alpha float64)
	Alpha() float64
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
