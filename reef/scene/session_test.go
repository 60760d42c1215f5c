package scene

import (
	"context"
	"errors"
	"testing"

	"ozean/hal"
	"ozean/reef/config"
	"ozean/reef/store"
)

type fakeTime struct{ now uint32 }

func (t *fakeTime) Micros() uint32        { return t.now }
func (t *fakeTime) SleepMicros(us uint32) { t.now += us }

// levels replays one button level per sample, then reports nothing held.
type levels struct {
	script []hal.ButtonMask
}

func (l *levels) Levels() hal.ButtonMask {
	if len(l.script) == 0 {
		return 0
	}
	m := l.script[0]
	l.script = l.script[1:]
	return m
}

type testDisplay struct{ s hal.Surface }

func (d testDisplay) Surface() hal.Surface { return d.s }

type testInput struct{ b hal.Buttons }

func (i testInput) Buttons() hal.Buttons { return i.b }

type testHAL struct {
	fb *hal.Framebuffer
	fl *hal.MemFlash
	tm *fakeTime
	in *levels
}

func newTestHAL(script ...hal.ButtonMask) *testHAL {
	return &testHAL{
		fb: hal.NewFramebuffer(hal.PanelWidth, hal.PanelHeight),
		fl: hal.NewMemFlash(16*1024, 4096),
		tm: &fakeTime{},
		in: &levels{script: script},
	}
}

func (h *testHAL) Logger() hal.Logger   { return nil }
func (h *testHAL) Backlight() hal.LED   { return nil }
func (h *testHAL) Display() hal.Display { return testDisplay{h.fb} }
func (h *testHAL) Input() hal.Input     { return testInput{h.in} }
func (h *testHAL) Flash() hal.Flash     { return h.fl }
func (h *testHAL) Time() hal.Time       { return h.tm }

func TestSessionAutostartRunsFrames(t *testing.T) {
	h := newTestHAL()
	cfg := config.Default()
	s, err := New(h, cfg, Options{Seed: 7, Autostart: true, Frames: 30})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrFramesDone) {
		t.Fatalf("Run = %v, want ErrFramesDone", err)
	}
	if s.Frames() != 30 {
		t.Fatalf("Frames = %d", s.Frames())
	}
	if s.st.Coord.Violations() != 0 {
		t.Fatalf("%d phase violations", s.st.Coord.Violations())
	}
	if h.tm.now == 0 {
		t.Fatalf("frames were not paced")
	}

	st, err := store.New(h.fl, h.tm, cfg.Save, nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if !st.HasSave() {
		t.Fatalf("first autosave was not written")
	}
}

func TestSessionCancelledContext(t *testing.T) {
	s, err := New(newTestHAL(), config.Default(), Options{Autostart: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}

func TestSessionLoadsSavedPet(t *testing.T) {
	h := newTestHAL(hal.ButtonRight, 0, hal.ButtonOk)
	cfg := config.Default()
	pre, err := store.New(h.fl, h.tm, cfg.Save, nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if _, err := pre.SaveFullIfDue(store.Full{Hunger: 40, Fun: 60, Energy: 50, HP: 15, AgeSec: 1234}, true); err != nil {
		t.Fatalf("SaveFullIfDue: %v", err)
	}

	s, err := New(h, cfg, Options{Frames: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrFramesDone) {
		t.Fatalf("Run = %v, want ErrFramesDone", err)
	}
	got := s.Pet().Stats()
	if got.Hunger != 40 || got.HP != 15 || got.AgeSec != 1234 {
		t.Fatalf("loaded stats = %+v", got)
	}
}

func TestSessionDeadSaveShowsDeathThenStartsFresh(t *testing.T) {
	h := newTestHAL(hal.ButtonRight, 0, hal.ButtonOk, 0, hal.ButtonOk)
	cfg := config.Default()
	pre, err := store.New(h.fl, h.tm, cfg.Save, nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if _, err := pre.SaveFullIfDue(store.Full{Hunger: 100, HP: 0, AgeSec: 99, Dead: true}, true); err != nil {
		t.Fatalf("SaveFullIfDue: %v", err)
	}

	s, err := New(h, cfg, Options{Frames: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Run(context.Background()); !errors.Is(err, ErrFramesDone) {
		t.Fatalf("Run = %v, want ErrFramesDone", err)
	}
	got := s.Pet().Stats()
	if got.Dead || got.HP != cfg.Pet.BaseHP {
		t.Fatalf("after death screen stats = %+v, want a fresh pet", got)
	}
}

func TestSessionRequiresDisplay(t *testing.T) {
	h := &noDisplay{newTestHAL()}
	if _, err := New(h, config.Default(), Options{}); !errors.Is(err, hal.ErrNotImplemented) {
		t.Fatalf("New without display = %v", err)
	}
}

type noDisplay struct{ *testHAL }

func (noDisplay) Display() hal.Display { return nil }
