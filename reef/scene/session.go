package scene

import (
	"context"
	"errors"
	"fmt"

	"ozean/hal"
	"ozean/reef/clock"
	"ozean/reef/config"
	"ozean/reef/input"
	"ozean/reef/pet"
	"ozean/reef/sprites"
	"ozean/reef/store"
	"ozean/reef/ui"
)

// Options are per-run switches that are not tuning.
type Options struct {
	Seed      int64  // 0 seeds from the time counter
	Autostart bool   // skip the start screen with a new pet
	Frames    uint64 // stop after this many frames; 0 runs until ctx ends
}

// ErrFramesDone ends Run once Options.Frames frames were rendered.
var ErrFramesDone = errors.New("frame budget reached")

// Session owns everything one aquarium needs and runs the start, game,
// pause and death screens in turn.
type Session struct {
	cfg  *config.Config
	opts Options

	surface hal.Surface
	time    hal.Time
	log     hal.Logger

	clock *clock.Clock
	in    *input.Manager
	pet   *pet.Pet
	store *store.Store

	st        *Stage
	back      *Backdrop
	bubbles   *Bubbles
	horses    *Seahorses
	shrimp    *Shrimp
	dirt      *Dirt
	particles *Particles
	fish      *Fish
	comp      *Compositor

	chrome *ui.Chrome
	modal  *ui.Modal

	frames uint64
}

// New wires a session to h. A missing display is an error; missing buttons
// or flash only disable input or saving.
func New(h hal.HAL, cfg *config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := h.Display()
	if d == nil || d.Surface() == nil {
		return nil, fmt.Errorf("session: no display: %w", hal.ErrNotImplemented)
	}
	s := &Session{
		cfg:     cfg,
		opts:    opts,
		surface: d.Surface(),
		time:    h.Time(),
		log:     h.Logger(),
	}

	var buttons hal.Buttons
	if in := h.Input(); in != nil {
		buttons = in.Buttons()
	}
	s.in = input.New(buttons, cfg.UI.Debounce)
	s.clock = clock.New(s.time, cfg.Clock)
	s.pet = pet.New(cfg.Pet)

	if f := h.Flash(); f != nil {
		st, err := store.New(f, s.time, cfg.Save, s.log)
		if err != nil {
			s.logf("warn: saving disabled: %v", err)
		} else {
			s.store = st
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = int64(s.time.Micros())
	}
	s.st = NewStage(s.surface, cfg, sprites.New(), seed, s.log)
	s.back = NewBackdrop(s.st, cfg.Canvas.MemoryBudget)
	s.bubbles = NewBubbles(s.st, cfg.Bubbles)
	s.horses = NewSeahorses(s.st, cfg.Seahorse, s.clock)
	s.shrimp = NewShrimp(s.st, cfg.Shrimp)
	s.dirt = NewDirt(s.st, cfg.Dirt, s.back)
	s.particles = NewParticles(s.st, cfg.Particles)
	s.fish = NewFish(s.st, cfg.Fish, s.pet, s.bubbles, s.particles, s.dirt)

	s.dirt.Puff = func(x, y float64, n int) { s.particles.Burst(Puff, x, y, n) }
	s.fish.OnAction = func(pet.Action) { s.save(true) }

	s.comp = NewCompositor(s.st, s.back, s.bubbles, s.horses, s.shrimp, s.dirt, s.fish, s.particles)

	labels := ui.NewLabels(cfg.UI.Language)
	s.chrome = ui.NewChrome(labels, s.surface.Width(), s.surface.Height(), cfg.Display.StatusBarH, cfg.Display.BottomBarH)
	s.modal = &ui.Modal{
		S:      s.surface,
		In:     s.in,
		T:      s.time,
		L:      labels,
		Log:    s.log,
		Poll:   cfg.UI.ModalPoll,
		Notice: cfg.UI.Notice,
	}

	if bl := h.Backlight(); bl != nil {
		if cfg.Display.BacklightOn {
			bl.High()
		} else {
			bl.Low()
		}
	}
	return s, nil
}

// Input exposes the button manager so a wireless relay can feed it.
func (s *Session) Input() *input.Manager { return s.in }

func (s *Session) Pet() *pet.Pet { return s.pet }

func (s *Session) Frames() uint64 { return s.frames }

func (s *Session) logf(format string, args ...any) {
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

type ending uint8

const (
	endedExit ending = iota
	endedDeath
)

// Run loops through the screens until ctx ends or the frame budget is spent.
func (s *Session) Run(ctx context.Context) error {
	fresh := s.opts.Autostart
	for {
		if !fresh {
			choice, err := s.modal.StartMenu(ctx, s.hasSave, s.clearSave)
			if err != nil {
				return err
			}
			if choice == ui.StartLoad {
				s.load()
			} else {
				s.pet.Reset()
			}
		} else {
			s.pet.Reset()
		}
		fresh = false

		end, err := s.play(ctx)
		if err != nil {
			return err
		}
		if end == endedDeath {
			if err := s.modal.Death(ctx, s.info()); err != nil {
				return err
			}
			fresh = true
		}
	}
}

func (s *Session) hasSave() bool {
	return s.store != nil && s.store.HasSave()
}

func (s *Session) clearSave() error {
	if s.store == nil {
		return nil
	}
	return s.store.ClearSave()
}

func (s *Session) load() {
	if s.store == nil {
		s.pet.Reset()
		return
	}
	f, err := s.store.LoadFull()
	if err != nil {
		s.logf("warn: load: %v; starting a new pet", err)
		s.pet.Reset()
		return
	}
	s.pet.Restore(pet.Stats{
		Hunger: int(f.Hunger),
		Fun:    int(f.Fun),
		Energy: int(f.Energy),
		HP:     int(f.HP),
		AgeSec: f.AgeSec,
		Dead:   f.Dead,
	})
	s.logf("loaded pet: age %s hp %d", s.pet.Age(), f.HP)
}

// save writes the pet if the interval for the kind of save elapsed. Event
// saves also refresh the legacy record.
func (s *Session) save(event bool) error {
	if s.store == nil {
		return nil
	}
	st := s.pet.Stats()
	full := store.Full{
		Hunger: int16(st.Hunger),
		Fun:    int16(st.Fun),
		Energy: int16(st.Energy),
		HP:     int16(st.HP),
		AgeSec: st.AgeSec,
		Dead:   st.Dead,
	}
	if _, err := s.store.SaveFullIfDue(full, event); err != nil {
		s.logf("error: %v", err)
		return err
	}
	if event {
		l := store.Legacy{Hunger: full.Hunger, Fun: full.Fun, Energy: full.Energy}
		if _, err := s.store.SaveStatsIfDue(l, true); err != nil {
			s.logf("error: %v", err)
			return err
		}
	}
	return nil
}

func (s *Session) info() ui.PauseInfo {
	return ui.PauseInfo{Stats: s.pet.Stats(), MaxHP: s.pet.MaxHP(), Age: s.pet.Age()}
}

// resetScene clears every entity and repaints the whole screen.
func (s *Session) resetScene() {
	s.bubbles.Reset()
	s.horses.Reset()
	s.shrimp.Reset()
	s.dirt.Reset()
	s.particles.Reset()
	s.fish.Reset()
	s.back.Render()
	s.redraw()
}

// redraw repaints the backdrop and chrome after a full-screen screen. Every
// entity repaints itself on the next frame.
func (s *Session) redraw() {
	if err := s.back.Show(); err != nil {
		s.logf("error: %v", err)
	}
	s.chrome.Invalidate()
	s.drawChrome()
	s.clock.Resync()
}

func (s *Session) drawChrome() {
	s.surface.BeginBatch()
	s.chrome.DrawStatus(s.surface, s.pet.Stats(), s.pet.MaxHP())
	s.chrome.DrawMenu(s.surface)
	s.surface.EndBatch()
}

// play runs frames until the pet dies or the player exits from the pause
// screen.
func (s *Session) play(ctx context.Context) (ending, error) {
	s.resetScene()
	for {
		if err := ctx.Err(); err != nil {
			return endedExit, err
		}
		dt := s.clock.Tick()

		s.in.Poll(s.time.Micros())
		a, pause := s.chrome.Handle(s.in.TakePressed(), s.pet.Busy())
		if a != pet.None && !s.pet.Enqueue(a) {
			s.logf("debug: action queue full, dropped %s", a)
		}
		if pause {
			choice, err := s.modal.Pause(ctx, s.info(), func() error { return s.save(true) })
			if err != nil {
				return endedExit, err
			}
			if choice == ui.PauseExit {
				return endedExit, nil
			}
			s.redraw()
			continue
		}

		s.pet.Update(dt)
		if err := s.comp.Frame(dt); err != nil {
			s.logf("error: %v", err)
		}
		s.drawChrome()
		_ = s.save(false)

		if s.pet.Dead() {
			s.logf("pet died at %s", s.pet.Age())
			_ = s.save(true)
			return endedDeath, nil
		}

		s.frames++
		if s.opts.Frames > 0 && s.frames >= s.opts.Frames {
			return endedExit, ErrFramesDone
		}
		s.clock.Pace()
	}
}
