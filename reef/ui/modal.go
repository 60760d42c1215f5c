package ui

import (
	"context"
	"fmt"
	"time"

	"ozean/hal"
	"ozean/reef/pet"
)

// Poller is the subset of the input manager the screens need.
type Poller interface {
	Poll(now uint32)
	TakePressed() hal.ButtonMask
}

// Modal runs full-screen blocking screens outside the frame cycle. Each
// screen polls input every Poll and repaints only when its state changed.
type Modal struct {
	S      hal.Surface
	In     Poller
	T      hal.Time
	L      Labels
	Log    hal.Logger
	Poll   time.Duration
	Notice time.Duration
}

type StartChoice uint8

const (
	StartNew StartChoice = iota
	StartLoad
)

type PauseChoice uint8

const (
	PauseResume PauseChoice = iota
	PauseExit
)

// PauseInfo is what the pause and death screens show about the pet.
type PauseInfo struct {
	Stats pet.Stats
	MaxHP int
	Age   time.Duration
}

const savedNotice = 800 * time.Millisecond

func (m *Modal) logf(format string, args ...any) {
	if m.Log != nil {
		m.Log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

func (m *Modal) sleep(d time.Duration) {
	if d > 0 {
		m.T.SleepMicros(uint32(d / time.Microsecond))
	}
}

// wait blocks until at least one button was pressed.
func (m *Modal) wait(ctx context.Context) (hal.ButtonMask, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		m.In.Poll(m.T.Micros())
		if p := m.In.TakePressed(); p != 0 {
			return p, nil
		}
		m.sleep(m.Poll)
	}
}

func move(sel, n int, p hal.ButtonMask) int {
	switch {
	case p&hal.ButtonLeft != 0:
		return (sel + n - 1) % n
	case p&hal.ButtonRight != 0:
		return (sel + 1) % n
	}
	return sel
}

// option draws one menu line: yellow with a marker when selected, gray when
// disabled.
func (m *Modal) option(x, y, w int, label string, selected, enabled bool) {
	c := ColorWhite
	switch {
	case !enabled:
		c = ColorGray
	case selected:
		c = ColorYellow
		label = "> " + label
	}
	TextCentered(m.S, x, y, w, label, c)
}

// StartMenu offers Start New, Load and Reset. Load is disabled while
// hasSave reports false. Reset calls clear and stays on the screen.
func (m *Modal) StartMenu(ctx context.Context, hasSave func() bool, clear func() error) (StartChoice, error) {
	saved := hasSave()
	sel := 0
	dirty := true
	for {
		if dirty {
			m.drawStart(sel, saved)
			dirty = false
		}
		p, err := m.wait(ctx)
		if err != nil {
			return StartNew, err
		}
		if p&hal.ButtonOk == 0 {
			if next := move(sel, 3, p); next != sel {
				sel, dirty = next, true
			}
			continue
		}
		switch sel {
		case 0:
			return StartNew, nil
		case 1:
			if saved {
				return StartLoad, nil
			}
		case 2:
			if err := clear(); err != nil {
				m.logf("error: clear save: %v", err)
			}
			saved = hasSave()
			m.notice(m.L.T(msgCleared), ColorYellow, m.Notice)
			sel, dirty = 0, true
		}
	}
}

func (m *Modal) drawStart(sel int, saved bool) {
	w, h := m.S.Width(), m.S.Height()
	m.S.BeginBatch()
	defer m.S.EndBatch()
	m.S.FillRect(0, 0, w, h, ColorNavy)

	title := "OzeanLive"
	TextScaled(m.S, (w-TextWidth(title)*3)/2, 14, 3, title, ColorWhite)
	sub := m.L.T(msgSubtitle)
	TextScaled(m.S, (w-TextWidth(sub)*2)/2, 50, 2, sub, ColorYellow)

	m.option(0, 94, w, m.L.T(msgStartNew), sel == 0, true)
	m.option(0, 110, w, m.L.T(msgLoad), sel == 1, saved)
	m.option(0, 126, w, m.L.T(msgReset), sel == 2, true)
}

// notice shows a short message across the lower part of the screen.
func (m *Modal) notice(s string, c uint16, d time.Duration) {
	w, h := m.S.Width(), m.S.Height()
	m.S.BeginBatch()
	m.S.FillRect(0, h-24, w, 14, ColorNavy)
	TextCentered(m.S, 0, h-22, w, s, c)
	m.S.EndBatch()
	m.sleep(d)
}

// Pause shows the pet's stats and offers Resume, Save & Resume and
// Save & Exit. save performs an event save.
func (m *Modal) Pause(ctx context.Context, info PauseInfo, save func() error) (PauseChoice, error) {
	sel := 0
	dirty := true
	for {
		if dirty {
			m.drawPause(info, sel)
			dirty = false
		}
		p, err := m.wait(ctx)
		if err != nil {
			return PauseResume, err
		}
		if p&hal.ButtonOk == 0 {
			if next := move(sel, 3, p); next != sel {
				sel, dirty = next, true
			}
			continue
		}
		switch sel {
		case 0:
			return PauseResume, nil
		case 1:
			if err := save(); err != nil {
				m.logf("error: save: %v", err)
				return PauseResume, nil
			}
			m.pauseNotice(m.L.T(msgSaved))
			return PauseResume, nil
		default:
			if err := save(); err != nil {
				m.logf("error: save: %v", err)
			}
			return PauseExit, nil
		}
	}
}

func (m *Modal) pauseBox() (x, y, w, h int) {
	return 30, 20, m.S.Width() - 60, m.S.Height() - 40
}

func (m *Modal) drawPause(info PauseInfo, sel int) {
	bx, by, bw, bh := m.pauseBox()
	m.S.BeginBatch()
	defer m.S.EndBatch()
	m.S.FillRect(bx, by, bw, bh, ColorPanel)
	drawRect(m.S, bx, by, bw, bh, ColorWhite)

	TextCentered(m.S, bx, by+4, bw, m.L.T(msgPaused), ColorYellow)
	s := info.Stats
	lines := []string{
		m.L.T(msgHunger, s.Hunger),
		m.L.T(msgFun, s.Fun),
		m.L.T(msgEnergy, s.Energy),
		m.L.T(msgHP, s.HP, info.MaxHP),
		m.L.T(msgAge, m.L.Age(info.Age)),
	}
	for i, l := range lines {
		Text(m.S, bx+12, by+20+i*lineHeight, l, ColorWhite)
	}
	m.option(bx, by+78, bw, m.L.T(msgResume), sel == 0, true)
	m.option(bx, by+90, bw, m.L.T(msgSaveResume), sel == 1, true)
	m.option(bx, by+102, bw, m.L.T(msgSaveExit), sel == 2, true)
}

func (m *Modal) pauseNotice(s string) {
	bx, by, bw, _ := m.pauseBox()
	m.S.BeginBatch()
	m.S.FillRect(bx+2, by+114, bw-4, lineHeight+2, ColorPanel)
	TextCentered(m.S, bx, by+116, bw, s, ColorGreen)
	m.S.EndBatch()
	m.sleep(savedNotice)
}

// Death shows how old the fish became and waits for Ok on New Fish.
func (m *Modal) Death(ctx context.Context, info PauseInfo) error {
	w, h := m.S.Width(), m.S.Height()
	m.S.BeginBatch()
	m.S.FillRect(0, 0, w, h, ColorBlack)
	TextScaled(m.S, (w-TextWidth(m.L.T(msgDied))*2)/2, 30, 2, m.L.T(msgDied), ColorWhite)
	TextCentered(m.S, 0, 70, w, m.L.T(msgReached, m.L.Age(info.Age)), ColorYellow)
	m.option(0, 120, w, m.L.T(msgNewFish), true, true)
	m.S.EndBatch()
	for {
		p, err := m.wait(ctx)
		if err != nil {
			return err
		}
		if p&hal.ButtonOk != 0 {
			return nil
		}
	}
}
