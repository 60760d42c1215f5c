package sprites

import (
	"math"

	"ozean/reef/gfx"
)

func fillRect(s *gfx.Sprite, x, y, w, h int, c uint16) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			s.Set(xx, yy, c)
		}
	}
}

// inEllipse reports whether the pixel center (x, y) lies inside the ellipse.
func inEllipse(x, y int, cx, cy, rx, ry float64) bool {
	dx := (float64(x) + 0.5 - cx) / rx
	dy := (float64(y) + 0.5 - cy) / ry
	return dx*dx+dy*dy <= 1
}

func fillEllipse(s *gfx.Sprite, cx, cy, rx, ry float64, c uint16) {
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if inEllipse(x, y, cx, cy, rx, ry) {
				s.Set(x, y, c)
			}
		}
	}
}

func fillCircle(s *gfx.Sprite, cx, cy, r float64, c uint16) { fillEllipse(s, cx, cy, r, r, c) }

// ring draws a one-pixel circle outline.
func ring(s *gfx.Sprite, cx, cy, r float64, c uint16) {
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= r && d > r-1 {
				s.Set(x, y, c)
			}
		}
	}
}

func line(s *gfx.Sprite, x0, y0, x1, y1 int, c uint16) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// recolor replaces every pixel of color from inside the mask.
func recolor(s *gfx.Sprite, from, to uint16, keep func(x, y int) bool) {
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if s.At(x, y) == from && keep(x, y) {
				s.Set(x, y, to)
			}
		}
	}
}

func flipV(s *gfx.Sprite) *gfx.Sprite {
	out := gfx.NewSprite(s.W, s.H)
	for y := 0; y < s.H; y++ {
		copy(out.Pix[(s.H-1-y)*s.W:(s.H-y)*s.W], s.Pix[y*s.W:(y+1)*s.W])
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
