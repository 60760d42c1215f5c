// Package ui draws the chrome around the aquarium (status bar, bottom menu)
// and runs the blocking start, pause and death screens.
package ui

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"ozean/hal"
	"ozean/reef/gfx"
)

var font tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	lineHeight = 10
	baseline   = 8
)

// displayer adapts a gfx.Target to the drivers.Displayer tinyfont draws on.
type displayer struct {
	t gfx.Target
}

func (d displayer) Size() (x, y int16) { return int16(d.t.Width()), int16(d.t.Height()) }

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d displayer) Display() error { return nil }

// scaled enlarges every pixel written through it to a k×k block anchored
// at (x0, y0).
type scaled struct {
	t      gfx.Target
	x0, y0 int
	k      int
}

func (s scaled) Size() (x, y int16) { return int16(s.t.Width()), int16(s.t.Height()) }

func (s scaled) SetPixel(x, y int16, c color.RGBA) {
	px := s.x0 + (int(x)-s.x0)*s.k
	py := s.y0 + (int(y)-s.y0)*s.k
	s.t.FillRect(px, py, s.k, s.k, hal.RGB565(c.R, c.G, c.B))
}

func (s scaled) Display() error { return nil }

func rgba(c uint16) color.RGBA {
	r, g, b := hal.RGB888(c)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Text writes s with its top-left corner at (x, y).
func Text(t gfx.Target, x, y int, s string, c uint16) {
	tinyfont.WriteLine(displayer{t: t}, font, int16(x), int16(y+baseline), s, rgba(c))
}

// TextScaled writes s enlarged k times.
func TextScaled(t gfx.Target, x, y, k int, s string, c uint16) {
	if k <= 1 {
		Text(t, x, y, s, c)
		return
	}
	d := scaled{t: t, x0: x, y0: y, k: k}
	tinyfont.WriteLine(d, font, int16(x), int16(y+baseline), s, rgba(c))
}

// TextWidth is the advance width of s in pixels.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(font, s)
	return int(w)
}

// TextCentered writes s horizontally centered inside [x, x+w).
func TextCentered(t gfx.Target, x, y, w int, s string, c uint16) {
	Text(t, x+(w-TextWidth(s))/2, y, s, c)
}

func drawRect(t gfx.Target, x, y, w, h int, c uint16) {
	if w <= 0 || h <= 0 {
		return
	}
	t.HLine(x, y, w, c)
	t.HLine(x, y+h-1, w, c)
	t.FillRect(x, y, 1, h, c)
	t.FillRect(x+w-1, y, 1, h, c)
}
