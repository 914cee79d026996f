package render

import "testing"

// TestBlendExtremes verifies the alpha early-outs return the exact inputs
func TestBlendExtremes(t *testing.T) {
	base := RGB{R: 10, G: 20, B: 30}
	src := RGB{R: 200, G: 100, B: 50}

	if got := Blend(base, src, 0); got != base {
		t.Errorf("Expected alpha 0 to keep base, got %v", got)
	}
	if got := Blend(base, src, 1); got != src {
		t.Errorf("Expected alpha 1 to replace with source, got %v", got)
	}
	if got := Blend(base, src, -2); got != base {
		t.Errorf("Expected negative alpha clamped to base, got %v", got)
	}
}

// TestBlendMidpoint verifies linear compositing at half opacity
func TestBlendMidpoint(t *testing.T) {
	got := Blend(RGB{R: 0, G: 100, B: 200}, RGB{R: 200, G: 0, B: 100}, 0.5)
	want := RGB{R: 100, G: 50, B: 150}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestScreenBrightensWithoutOverflow verifies the screen blend only ever
// lightens and saturates at white
func TestScreenBrightensWithoutOverflow(t *testing.T) {
	base := RGB{R: 128, G: 128, B: 128}
	src := RGB{R: 255, G: 255, B: 255}

	lit := Screen(base, src, 0.5)
	if lit.R <= base.R {
		t.Errorf("Expected screen blend to lighten, got %v from %v", lit, base)
	}

	// Repeated application accumulates toward but never past white
	c := base
	for i := 0; i < 20; i++ {
		c = Screen(c, src, 1)
	}
	if c != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Expected saturation at white, got %v", c)
	}

	if got := Screen(base, src, 0); got != base {
		t.Errorf("Expected alpha 0 to keep base, got %v", got)
	}
}

// TestLerpEndpointsAndClamp verifies interpolation endpoints and t
// clamping
func TestLerpEndpointsAndClamp(t *testing.T) {
	a := RGB{R: 0, G: 50, B: 100}
	b := RGB{R: 200, G: 150, B: 0}
	if Lerp(a, b, 0) != a || Lerp(a, b, -1) != a {
		t.Error("Expected t<=0 to return a")
	}
	if Lerp(a, b, 1) != b || Lerp(a, b, 2) != b {
		t.Error("Expected t>=1 to return b")
	}
	mid := Lerp(a, b, 0.5)
	if mid != (RGB{R: 100, G: 100, B: 50}) {
		t.Errorf("Expected midpoint (100,100,50), got %v", mid)
	}
}

// TestBufferSetBounds verifies out-of-range writes are dropped and
// in-range writes composite into the cell
func TestBufferSetBounds(t *testing.T) {
	buf := NewBuffer(4, 3)

	buf.Set(-1, 0, RGB{R: 255}, 1)
	buf.Set(4, 0, RGB{R: 255}, 1)
	buf.Set(0, 3, RGB{R: 255}, 1)

	buf.Set(2, 1, RGB{R: 255}, 1)
	if got := buf.Get(2, 1); got.R != 255 {
		t.Errorf("Expected cell written, got %v", got)
	}
	if got := buf.Get(0, 0); got != RGBBlack {
		t.Errorf("Expected untouched cell black, got %v", got)
	}
}

// TestBufferClearAndResize verifies clear zeroes cells and resize
// reallocates to the new dimensions
func TestBufferClearAndResize(t *testing.T) {
	buf := NewBuffer(2, 2)
	buf.Set(1, 1, RGB{G: 255}, 1)
	buf.Clear()
	if got := buf.Get(1, 1); got != RGBBlack {
		t.Errorf("Expected cleared cell black, got %v", got)
	}

	buf.Resize(5, 4)
	w, h := buf.Size()
	if w != 5 || h != 4 {
		t.Errorf("Expected size 5x4, got %dx%d", w, h)
	}
	buf.Set(4, 3, RGB{B: 255}, 1)
	if got := buf.Get(4, 3); got.B != 255 {
		t.Errorf("Expected corner writable after resize, got %v", got)
	}
}
