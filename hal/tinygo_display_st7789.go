//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"image/color"

	"tinygo.org/x/drivers/st7789"
)

// lcdSurface drives the ST7789 directly; there is no local frame copy.
type lcdSurface struct {
	lcd  *st7789.Device
	w, h int
}

func newLCDSurface(lcd *st7789.Device, w, h int) *lcdSurface {
	return &lcdSurface{lcd: lcd, w: w, h: h}
}

func (s *lcdSurface) Width() int  { return s.w }
func (s *lcdSurface) Height() int { return s.h }

// The driver toggles chip-select per transfer.
func (s *lcdSurface) BeginBatch() {}
func (s *lcdSurface) EndBatch()   {}

func (s *lcdSurface) SetPixel(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.lcd.SetPixel(int16(x), int16(y), rgba(c))
}

func (s *lcdSurface) FillRect(x, y, w, h int, c uint16) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > s.w {
		w = s.w - x
	}
	if y+h > s.h {
		h = s.h - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	_ = s.lcd.FillRectangle(int16(x), int16(y), int16(w), int16(h), rgba(c))
}

func (s *lcdSurface) HLine(x, y, w int, c uint16) {
	s.FillRect(x, y, w, 1, c)
}

func (s *lcdSurface) WriteSpan(x, y int, px []uint16) {
	if y < 0 || y >= s.h || len(px) == 0 {
		return
	}
	if x < 0 {
		if -x >= len(px) {
			return
		}
		px = px[-x:]
		x = 0
	}
	if x >= s.w {
		return
	}
	if x+len(px) > s.w {
		px = px[:s.w-x]
	}
	_ = s.lcd.DrawRGBBitmap(int16(x), int16(y), px, int16(len(px)), 1)
}

func (s *lcdSurface) BlitFull(px []uint16) error {
	if len(px) < s.w*s.h {
		return ErrNotImplemented
	}
	return s.lcd.DrawRGBBitmap(0, 0, px[:s.w*s.h], int16(s.w), int16(s.h))
}

func rgba(c uint16) color.RGBA {
	r, g, b := RGB888(c)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
