//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"ozean/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that mirrors the panel and maps the
// keyboard onto the front buttons. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg HostConfig) error {
	h := newHost(cfg)
	defer h.close()
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Ozean (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*3, h.fb.height*3)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []uint16
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.buttons.setHeld(pollKeyboard())
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]uint16, fb.width*fb.height)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.Snapshot(g.scratch)

	dst := g.img.Pix
	for i, p := range g.scratch {
		r, gg, b := RGB888(p)
		j := i * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
