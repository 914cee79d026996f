// Package render is the terminal presentation layer used by the sandbox
// binary: an RGB cell buffer with alpha/screen compositing flushed to a
// tcell screen.
package render

// RGB is an 8-bit color triple
type RGB struct {
	R, G, B uint8
}

var RGBBlack = RGB{0, 0, 0}

func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Lerp interpolates a→b at t∈[0,1]
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clamp(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clamp(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Blend is linear alpha compositing of src over c.
// Early-outs at the extremes to save math.
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Screen lightens c by src scaled with alpha; accumulates without ever
// exceeding white, which keeps overlapping bolts readable
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}
	return RGB{
		R: screenChannel(c.R, src.R, alpha),
		G: screenChannel(c.G, src.G, alpha),
		B: screenChannel(c.B, src.B, alpha),
	}
}

func screenChannel(d, s uint8, alpha float64) uint8 {
	df := float64(d) / 255.0
	sf := float64(s) / 255.0 * alpha
	return clamp((1.0 - (1.0-df)*(1.0-sf)) * 255.0)
}
