//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Each terminal cell shows termScale panel columns and two half-block rows
// of termScale panel rows each.
const termScale = 2

// RunTerminal mirrors the panel into the terminal using half-block cells.
// Arrow keys, Enter and Space drive the front buttons; q or Esc quits.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg HostConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	h := newHost(cfg)
	defer h.close()
	step := newApp(h)

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t := time.NewTicker(time.Second / 30)
	defer t.Stop()

	snap := make([]uint16, h.fb.width*h.fb.height)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := handleTermEvent(h, screen, ev); quit {
				return nil
			}
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			h.fb.Snapshot(snap)
			drawTerm(screen, snap, h.fb.width, h.fb.height)
		}
	}
}

func handleTermEvent(h *hostHAL, screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		screen.Sync()
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			h.buttons.pulse(ButtonLeft, now)
		case tcell.KeyRight:
			h.buttons.pulse(ButtonRight, now)
		case tcell.KeyEnter, tcell.KeyDown:
			h.buttons.pulse(ButtonOk, now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'a':
				h.buttons.pulse(ButtonLeft, now)
			case 'd':
				h.buttons.pulse(ButtonRight, now)
			case ' ', 's':
				h.buttons.pulse(ButtonOk, now)
			}
		}
	}
	return false
}

func drawTerm(screen tcell.Screen, px []uint16, w, h int) {
	cols := w / termScale
	rows := (h + 2*termScale - 1) / (2 * termScale)
	for cy := 0; cy < rows; cy++ {
		top := cy * 2 * termScale
		bot := top + termScale
		for cx := 0; cx < cols; cx++ {
			x := cx * termScale
			fg := termColor(px, w, h, x, top)
			bg := termColor(px, w, h, x, bot)
			screen.SetContent(cx, cy, '▀', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	screen.Show()
}

func termColor(px []uint16, w, h, x, y int) tcell.Color {
	if y >= h {
		return tcell.ColorBlack
	}
	r, g, b := RGB888(px[y*w+x])
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
