package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ozean/hal"
	"ozean/reef/pet"
)

type fakeTime struct {
	now uint32
}

func (t *fakeTime) Micros() uint32        { return t.now }
func (t *fakeTime) SleepMicros(us uint32) { t.now += us }

// scripted hands out one press per poll and cancels when it runs dry.
type scripted struct {
	presses []hal.ButtonMask
	cancel  context.CancelFunc
	polls   int
}

func (s *scripted) Poll(uint32) { s.polls++ }

func (s *scripted) TakePressed() hal.ButtonMask {
	if len(s.presses) == 0 {
		s.cancel()
		return 0
	}
	p := s.presses[0]
	s.presses = s.presses[1:]
	return p
}

func newModal(t *testing.T, presses ...hal.ButtonMask) (*Modal, *hal.Framebuffer, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	fb := hal.NewFramebuffer(hal.PanelWidth, hal.PanelHeight)
	m := &Modal{
		S:      fb,
		In:     &scripted{presses: presses, cancel: cancel},
		T:      &fakeTime{},
		L:      NewLabels("en"),
		Poll:   100 * time.Millisecond,
		Notice: time.Second,
	}
	return m, fb, ctx
}

const (
	left  = hal.ButtonLeft
	ok    = hal.ButtonOk
	right = hal.ButtonRight
)

func TestStartMenuLoadDisabledWithoutSave(t *testing.T) {
	m, _, ctx := newModal(t, right, ok, right, ok, ok)
	saved := false
	clears := 0
	got, err := m.StartMenu(ctx, func() bool { return saved }, func() error {
		clears++
		return nil
	})
	if err != nil {
		t.Fatalf("StartMenu: %v", err)
	}
	if got != StartNew {
		t.Fatalf("choice = %d, want StartNew", got)
	}
	if clears != 1 {
		t.Fatalf("clear called %d times, want 1", clears)
	}
}

func TestStartMenuLoad(t *testing.T) {
	m, _, ctx := newModal(t, left, left, ok)
	got, err := m.StartMenu(ctx, func() bool { return true }, func() error { return nil })
	if err != nil {
		t.Fatalf("StartMenu: %v", err)
	}
	if got != StartLoad {
		t.Fatalf("choice = %d, want StartLoad", got)
	}
}

func TestStartMenuResetDisablesLoad(t *testing.T) {
	// Reset, then try Load: it must be ignored and the script runs dry.
	m, _, ctx := newModal(t, left, ok, right, ok)
	saved := true
	_, err := m.StartMenu(ctx, func() bool { return saved }, func() error {
		saved = false
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestPauseSaveAndResume(t *testing.T) {
	m, fb, ctx := newModal(t, right, ok)
	saves := 0
	got, err := m.Pause(ctx, PauseInfo{Stats: pet.Stats{Hunger: 10, HP: 20}, MaxHP: 20}, func() error {
		saves++
		return nil
	})
	if err != nil || got != PauseResume {
		t.Fatalf("Pause = %d, %v; want PauseResume", got, err)
	}
	if saves != 1 {
		t.Fatalf("saves = %d, want 1", saves)
	}
	bx, by, _, _ := m.pauseBox()
	if c := fb.Pixel(bx, by); c != ColorWhite {
		t.Fatalf("box border = %#04x, want white", c)
	}
	if tm := m.T.(*fakeTime); tm.now < uint32(savedNotice/time.Microsecond) {
		t.Fatalf("saved notice shown for %dus", tm.now)
	}
}

func TestPauseSaveAndExit(t *testing.T) {
	m, _, ctx := newModal(t, left, ok)
	saves := 0
	got, err := m.Pause(ctx, PauseInfo{}, func() error {
		saves++
		return nil
	})
	if err != nil || got != PauseExit || saves != 1 {
		t.Fatalf("Pause = %d, %v, saves %d; want PauseExit after one save", got, err, saves)
	}
}

func TestPauseResumeDoesNotSave(t *testing.T) {
	m, _, ctx := newModal(t, ok)
	got, err := m.Pause(ctx, PauseInfo{}, func() error {
		t.Fatalf("save called on Resume")
		return nil
	})
	if err != nil || got != PauseResume {
		t.Fatalf("Pause = %d, %v", got, err)
	}
}

func TestDeathWaitsForOk(t *testing.T) {
	m, _, ctx := newModal(t, left, right, ok)
	if err := m.Death(ctx, PauseInfo{Age: 3 * time.Hour}); err != nil {
		t.Fatalf("Death: %v", err)
	}
	if s := m.In.(*scripted); len(s.presses) != 0 {
		t.Fatalf("%d presses left unread", len(s.presses))
	}
}

func TestChromeMenuNavigation(t *testing.T) {
	c := NewChrome(NewLabels("en"), hal.PanelWidth, hal.PanelHeight, 16, 20)
	if _, pause := c.Handle(left, false); pause || c.Selected() != ItemMenu {
		t.Fatalf("left from first item selected %d", c.Selected())
	}
	if _, pause := c.Handle(ok, false); !pause {
		t.Fatalf("ok on Menu did not pause")
	}
	c.Handle(right, false)
	if c.Selected() != ItemFeed {
		t.Fatalf("right from Menu selected %d, want Feed", c.Selected())
	}
	if a, _ := c.Handle(ok, true); a != pet.None {
		t.Fatalf("busy pet accepted %s", a)
	}
	if a, _ := c.Handle(ok, false); a != pet.Feed {
		t.Fatalf("ok on Feed = %s", a)
	}
	c.Handle(right, false)
	c.Handle(right, false)
	c.Handle(right, false)
	if a, _ := c.Handle(ok, false); a != pet.Clean {
		t.Fatalf("ok on Clean = %s", a)
	}
}

func TestChromeRedrawsOnlyOnChange(t *testing.T) {
	fb := hal.NewFramebuffer(hal.PanelWidth, hal.PanelHeight)
	c := NewChrome(NewLabels("en"), hal.PanelWidth, hal.PanelHeight, 16, 20)
	s := pet.Stats{Hunger: 30, Fun: 70, Energy: 80, HP: 20}

	if !c.DrawStatus(fb, s, 20) || !c.DrawMenu(fb) {
		t.Fatalf("first draw skipped")
	}
	n := fb.Writes()
	if c.DrawStatus(fb, s, 20) || c.DrawMenu(fb) {
		t.Fatalf("unchanged chrome redrawn")
	}
	if fb.Writes() != n {
		t.Fatalf("writes %d -> %d without change", n, fb.Writes())
	}
	s.Hunger++
	if !c.DrawStatus(fb, s, 20) {
		t.Fatalf("changed status not redrawn")
	}
	c.Handle(right, false)
	if !c.DrawMenu(fb) {
		t.Fatalf("changed selection not redrawn")
	}
	c.Invalidate()
	if !c.DrawStatus(fb, s, 20) || !c.DrawMenu(fb) {
		t.Fatalf("invalidated chrome not redrawn")
	}
	if got := fb.Pixel(1, 0); got != ColorStatusBG {
		t.Fatalf("status bar pixel = %#04x", got)
	}
}

func TestLabels(t *testing.T) {
	en, de := NewLabels("en-US"), NewLabels("de-AT")
	if got := en.T(msgFeed); got != "Feed" {
		t.Fatalf("en feed = %q", got)
	}
	if got := de.T(msgFeed); got != "Futter" {
		t.Fatalf("de feed = %q", got)
	}
	if got := NewLabels("xx-invalid-").T(msgMenu); got != "Menu" {
		t.Fatalf("fallback menu = %q", got)
	}
	if got := de.T(msgHP, 3, 20); got != "LP: 3/20" {
		t.Fatalf("de hp = %q", got)
	}
}

func TestLabelsAge(t *testing.T) {
	l := NewLabels("en")
	if got := l.Age(0); got != "0 s" {
		t.Fatalf("Age(0) = %q", got)
	}
	got := l.Age(2*time.Hour + 3*time.Minute + 4*time.Second)
	if !strings.Contains(got, "2 h") || !strings.Contains(got, "3 m") || strings.Contains(got, "4 s") {
		t.Fatalf("Age = %q, want the two leading units", got)
	}
}

func TestTextWidth(t *testing.T) {
	if TextWidth("") != 0 {
		t.Fatalf("empty string has width")
	}
	if a, b := TextWidth("Feed"), TextWidth("Feed Feed"); b <= a {
		t.Fatalf("width not increasing: %d, %d", a, b)
	}
}
