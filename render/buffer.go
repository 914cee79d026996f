package render

import (
	"github.com/gdamore/tcell/v2"
)

// Buffer is a per-frame color grid. Strokes composite into it with the
// screen blend; Flush paints cell backgrounds on the terminal.
type Buffer struct {
	w, h  int
	cells []RGB
}

func NewBuffer(w, h int) *Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Buffer{w: w, h: h, cells: make([]RGB, w*h)}
}

func (b *Buffer) Size() (int, int) { return b.w, b.h }

// Resize reallocates for a new terminal size and clears
func (b *Buffer) Resize(w, h int) {
	if w == b.w && h == b.h {
		return
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b.w, b.h = w, h
	b.cells = make([]RGB, w*h)
}

func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = RGBBlack
	}
}

// Set screen-blends color into the cell at (x, y); off-grid is ignored
func (b *Buffer) Set(x, y int, color RGB, alpha float64) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := y*b.w + x
	b.cells[i] = Screen(b.cells[i], color, alpha)
}

// Get returns the composited cell color; off-grid reads are black
func (b *Buffer) Get(x, y int) RGB {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return RGBBlack
	}
	return b.cells[y*b.w+x]
}

// DrawLine rasterizes a stroke segment with Bresenham
func (b *Buffer) DrawLine(x0, y0, x1, y1 int, color RGB, alpha float64) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		b.Set(x0, y0, color, alpha)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a circle, aspect-corrected for terminal cells
func (b *Buffer) DrawDisc(cx, cy int, radius float64, color RGB, alpha float64) {
	if radius <= 0 {
		b.Set(cx, cy, color, alpha)
		return
	}
	// Terminal cells are roughly twice as tall as wide
	rx := int(radius*2 + 0.5)
	ry := int(radius + 0.5)
	if rx < 1 {
		rx = 1
	}
	if ry < 1 {
		ry = 1
	}
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			fx := float64(x) / float64(rx)
			fy := float64(y) / float64(ry)
			d2 := fx*fx + fy*fy
			if d2 > 1 {
				continue
			}
			// Soft edge falloff
			b.Set(cx+x, cy+y, color, alpha*(1-d2*0.7))
		}
	}
}

// Flush paints the buffer onto the screen as cell backgrounds
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := b.cells[y*b.w+x]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// DrawText writes a foreground string directly to the screen over the
// flushed buffer; used for the sandbox status line
func DrawText(screen tcell.Screen, x, y int, text string, color RGB) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(color.R), int32(color.G), int32(color.B)))
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
