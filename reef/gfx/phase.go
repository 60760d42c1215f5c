package gfx

import (
	"errors"
	"fmt"

	"ozean/hal"
)

// Phase is the stage of the frame pipeline.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseCollect
	PhaseRestore
	PhaseDraw
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseCollect:
		return "COLLECT"
	case PhaseRestore:
		return "RESTORE"
	case PhaseDraw:
		return "DRAW"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Op classifies an operation checked against the current phase.
type Op uint8

const (
	OpMutate  Op = iota // pet actions and their effects
	OpRestore           // canvas-to-panel copies
	OpPaint             // sprite and overlay writes
)

func (o Op) String() string {
	switch o {
	case OpMutate:
		return "mutate"
	case OpRestore:
		return "restore"
	case OpPaint:
		return "paint"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

var ErrPhaseOrder = errors.New("phase out of order")

// Coordinator enforces COLLECT → RESTORE → DRAW within a frame.
type Coordinator struct {
	log        hal.Logger
	phase      Phase
	frame      uint64
	violations uint64
	observe    func(Phase, uint64)
}

func NewCoordinator(log hal.Logger) *Coordinator {
	return &Coordinator{log: log}
}

func (c *Coordinator) Phase() Phase       { return c.phase }
func (c *Coordinator) Frame() uint64      { return c.frame }
func (c *Coordinator) Violations() uint64 { return c.violations }

// Observe registers a callback invoked on every phase change.
func (c *Coordinator) Observe(fn func(Phase, uint64)) { c.observe = fn }

// Begin starts a new frame in COLLECT.
func (c *Coordinator) Begin() error {
	if c.phase != PhaseIdle {
		return c.misorder(PhaseCollect)
	}
	c.frame++
	c.set(PhaseCollect)
	return nil
}

// Advance moves to the next phase; only COLLECT → RESTORE and
// RESTORE → DRAW are accepted.
func (c *Coordinator) Advance(next Phase) error {
	want := PhaseIdle
	switch c.phase {
	case PhaseCollect:
		want = PhaseRestore
	case PhaseRestore:
		want = PhaseDraw
	}
	if next != want || want == PhaseIdle {
		return c.misorder(next)
	}
	c.set(next)
	return nil
}

// End closes the frame from any phase.
func (c *Coordinator) End() { c.set(PhaseIdle) }

// Allow reports whether op may run now. Out-of-phase operations are logged
// and refused.
func (c *Coordinator) Allow(op Op) bool {
	ok := false
	switch op {
	case OpMutate:
		ok = c.phase == PhaseCollect
	case OpRestore:
		ok = c.phase == PhaseRestore
	case OpPaint:
		ok = c.phase == PhaseRestore || c.phase == PhaseDraw
	}
	if ok {
		return true
	}
	c.violation(fmt.Sprintf("%s during %s", op, c.phase))
	return false
}

func (c *Coordinator) set(p Phase) {
	c.phase = p
	if c.observe != nil {
		c.observe(p, c.frame)
	}
}

func (c *Coordinator) misorder(next Phase) error {
	msg := fmt.Sprintf("%s -> %s", c.phase, next)
	c.violation(msg)
	return fmt.Errorf("frame %d: %s: %w", c.frame, msg, ErrPhaseOrder)
}

func (c *Coordinator) violation(msg string) {
	c.violations++
	if c.log != nil {
		c.log.WriteLineString(fmt.Sprintf("warn: phase violation: %s (frame %d)", msg, c.frame))
	}
	if strictPhases {
		panic("gfx: phase violation: " + msg)
	}
}

// Guarded wraps the panel so every write is checked against the coordinator.
type Guarded struct {
	S hal.Surface
	C *Coordinator
}

func (g Guarded) Width() int  { return g.S.Width() }
func (g Guarded) Height() int { return g.S.Height() }

func (g Guarded) SetPixel(x, y int, col uint16) {
	if g.C.Allow(OpPaint) {
		g.S.SetPixel(x, y, col)
	}
}

func (g Guarded) FillRect(x, y, w, h int, col uint16) {
	if g.C.Allow(OpPaint) {
		g.S.FillRect(x, y, w, h, col)
	}
}

func (g Guarded) HLine(x, y, w int, col uint16) {
	if g.C.Allow(OpPaint) {
		g.S.HLine(x, y, w, col)
	}
}

func (g Guarded) WriteSpan(x, y int, px []uint16) {
	if g.C.Allow(OpPaint) {
		g.S.WriteSpan(x, y, px)
	}
}
