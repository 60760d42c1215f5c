package gfx

import (
	"errors"
	"fmt"

	"ozean/hal"
)

var ErrCanvasUnavailable = errors.New("background canvas unavailable")

// Canvas is an off-screen RGB565 copy of the static scenery. It is the only
// source used to erase sprites.
type Canvas struct {
	w, h int
	px   []uint16
}

// NewCanvas allocates a w×h canvas. A positive budget caps the allocation in
// bytes; exceeding it reports ErrCanvasUnavailable and the caller runs
// without a canvas.
func NewCanvas(w, h, budget int) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", w, h, ErrCanvasUnavailable)
	}
	need := w * h * 2
	if budget > 0 && need > budget {
		return nil, fmt.Errorf("canvas needs %d bytes, budget %d: %w", need, budget, ErrCanvasUnavailable)
	}
	return &Canvas{w: w, h: h, px: make([]uint16, w*h)}, nil
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// Bytes is the memory held by the pixel buffer.
func (c *Canvas) Bytes() int { return len(c.px) * 2 }

func (c *Canvas) Pixels() []uint16 { return c.px }

func (c *Canvas) Fill(col uint16) {
	for i := range c.px {
		c.px[i] = col
	}
}

func (c *Canvas) Pixel(x, y int) uint16 {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.px[y*c.w+x]
}

func (c *Canvas) SetPixel(x, y int, col uint16) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.px[y*c.w+x] = col
}

func (c *Canvas) FillRect(x, y, w, h int, col uint16) {
	r := R(x, y, w, h).Intersect(R(0, 0, c.w, c.h))
	for yy := r.Y; yy < r.Bottom(); yy++ {
		row := c.px[yy*c.w+r.X : yy*c.w+r.Right()]
		for i := range row {
			row[i] = col
		}
	}
}

func (c *Canvas) HLine(x, y, w int, col uint16) { c.FillRect(x, y, w, 1, col) }

func (c *Canvas) WriteSpan(x, y int, px []uint16) {
	r := R(x, y, len(px), 1).Intersect(R(0, 0, c.w, c.h))
	if r.Empty() {
		return
	}
	copy(c.px[r.Y*c.w+r.X:], px[r.X-x:r.X-x+r.W])
}

// RestoreTo copies the canvas block under r onto s, one span per row.
func (c *Canvas) RestoreTo(s hal.Surface, r Rect) {
	r = r.Intersect(R(0, 0, c.w, c.h))
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		off := y*c.w + r.X
		s.WriteSpan(r.X, y, c.px[off:off+r.W])
	}
}

// BlitTo copies the whole canvas onto s.
func (c *Canvas) BlitTo(s hal.Surface) error {
	if s.Width() != c.w || s.Height() != c.h {
		for y := 0; y < c.h; y++ {
			s.WriteSpan(0, y, c.px[y*c.w:(y+1)*c.w])
		}
		return nil
	}
	return s.BlitFull(c.px)
}
