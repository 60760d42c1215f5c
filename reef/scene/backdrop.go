package scene

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"ozean/reef/gfx"
	"ozean/reef/sprites"
)

const (
	colorBG        uint16 = 0x0000
	colorWater     uint16 = 0x0010
	colorWaterTop  uint16 = 0x07FF
	colorSandLight uint16 = 0xFEE5
	colorSandDark  uint16 = 0xE69D
)

// paintEnvironment draws water, sand and the decorations onto t.
func paintEnvironment(t gfx.Target, play gfx.Rect, groundY int, sh *sprites.Sheet) {
	midY := play.Y + play.H/3
	t.FillRect(play.X, play.Y, play.W, midY-play.Y, colorWaterTop)
	t.FillRect(play.X, midY, play.W, play.Bottom()-midY, colorWater)

	groundH := play.Bottom() - groundY
	t.FillRect(play.X, groundY, play.W, groundH, colorSandDark)
	t.FillRect(play.X, groundY, play.W, 8, colorSandLight)
	for x := play.X; x < play.Right(); x += 6 {
		t.SetPixel(x, groundY-1, colorSandLight)
		t.SetPixel(x+3, groundY-2, colorSandLight)
	}

	sh.Kelp.Draw(t, play.X+4, groundY-sh.Kelp.H+4, false)
	sh.BrainCoral.Draw(t, play.X+30, groundY-sh.BrainCoral.H+4, false)

	fanX := play.X + 80
	sh.FanCoral.Draw(t, fanX, groundY-sh.FanCoral.H+6, false)
	sh.Stone.Draw(t, fanX+6, groundY+8-sh.Stone.H/2, false)

	stagX := play.X + 140
	sh.Staghorn.Draw(t, stagX, groundY-sh.Staghorn.H+6, false)
	sh.Tube.Draw(t, stagX+22, groundY-sh.Tube.H+10, false)

	sh.Anemone.Draw(t, play.Right()-sh.Anemone.W-5, groundY-sh.Anemone.H+10, false)
}

// Backdrop is everything behind the moving sprites: the environment and the
// dirt on the glass. With a canvas it is rendered once and restored by copy;
// without one every restore repaints the affected rectangle from scratch.
type Backdrop struct {
	st     *Stage
	canvas *gfx.Canvas
	dirt   *Dirt
}

// NewBackdrop allocates the canvas within budget bytes (0 for no limit). An
// allocation failure switches the session to no-canvas mode.
func NewBackdrop(st *Stage, budget int) *Backdrop {
	b := &Backdrop{st: st}
	s := st.Surface()
	c, err := gfx.NewCanvas(s.Width(), s.Height(), budget)
	if err != nil {
		st.logf("warn: %v; restoring by repaint", err)
		return b
	}
	b.canvas = c
	st.logf("canvas: %s", humanize.IBytes(uint64(c.Bytes())))
	return b
}

func (b *Backdrop) HasCanvas() bool { return b.canvas != nil }

func (b *Backdrop) attach(d *Dirt) { b.dirt = d }

func (b *Backdrop) paint(t gfx.Target) {
	paintEnvironment(t, b.st.Play, b.st.GroundY, b.st.Sheet)
	if b.dirt != nil {
		b.dirt.paint(t)
	}
}

// Render rebuilds the canvas from the environment and current dirt.
func (b *Backdrop) Render() {
	if b.canvas == nil {
		return
	}
	b.canvas.Fill(colorBG)
	b.paint(b.canvas)
}

// Show puts the whole backdrop on the panel. It runs outside the frame
// cycle (start-up and after full-screen screens).
func (b *Backdrop) Show() error {
	s := b.st.Surface()
	s.BeginBatch()
	defer s.EndBatch()
	if b.canvas != nil {
		if err := b.canvas.BlitTo(s); err != nil {
			return fmt.Errorf("show backdrop: %w", err)
		}
		return nil
	}
	s.FillRect(0, 0, s.Width(), s.Height(), colorBG)
	b.paint(gfx.Clip(s, b.st.Play))
	return nil
}

// Restore puts the backdrop back under r. Only valid in RESTORE.
func (b *Backdrop) Restore(r gfx.Rect) {
	if !b.st.Coord.Allow(gfx.OpRestore) {
		return
	}
	s := b.st.Surface()
	if b.canvas != nil {
		b.canvas.RestoreTo(s, r)
		return
	}
	b.paint(gfx.Clip(s, r.Intersect(b.st.Play)))
}

// stamp draws fn into the canvas; without a canvas it is a no-op because
// restores repaint dirt directly.
func (b *Backdrop) stamp(fn func(t gfx.Target)) {
	if b.canvas != nil {
		fn(b.canvas)
	}
}
