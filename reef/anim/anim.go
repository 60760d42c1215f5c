// Package anim drives sprite selection for the pet: a small state machine
// over clips with timed transitions.
package anim

import (
	"fmt"

	"ozean/reef/gfx"
)

type State uint8

const (
	Idle State = iota
	Moving
	Eating
	Playing
	Sleeping
	Pooping

	NumStates
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Eating:
		return "eating"
	case Playing:
		return "playing"
	case Sleeping:
		return "sleeping"
	case Pooping:
		return "pooping"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Clip is an immutable frame sequence.
type Clip struct {
	Frames []*gfx.Sprite
	FPS    float64
	Loop   bool
}

// Clips binds each state to its clip. Missing entries fall back to Idle.
type Clips [NumStates]*Clip

type Animator struct {
	clips Clips

	cur     State
	next    State
	pending bool

	progress float64
	duration float64

	frame int
	acc   float64
}

func New(clips Clips) *Animator {
	return &Animator{clips: clips, progress: 1}
}

func (a *Animator) State() State { return a.cur }

// Pending returns the state being transitioned to, if any.
func (a *Animator) Pending() (State, bool) { return a.next, a.pending }

// Progress is the transition blend in [0,1]; 1 when settled.
func (a *Animator) Progress() float64 { return a.progress }

func (a *Animator) Transitioning() bool { return a.pending }
func (a *Animator) FrameIndex() int     { return a.frame }

// Request starts a transition to s over duration seconds. It is a no-op
// returning false when s is already current or already pending.
func (a *Animator) Request(s State, duration float64) bool {
	if s >= NumStates || s == a.cur || (a.pending && s == a.next) {
		return false
	}
	a.next = s
	a.pending = true
	a.duration = duration
	a.progress = 0
	if duration <= 0 {
		a.settle()
	}
	return true
}

// Update advances the transition and, once settled, frame playback.
func (a *Animator) Update(dt float64) {
	if a.pending {
		a.progress += dt / a.duration
		if a.progress >= 1 {
			a.settle()
		}
		return
	}
	c := a.clip()
	if c == nil || c.FPS <= 0 || len(c.Frames) == 0 {
		return
	}
	step := 1 / c.FPS
	a.acc += dt
	for a.acc >= step {
		a.acc -= step
		a.frame++
		if a.frame >= len(c.Frames) {
			if c.Loop {
				a.frame = 0
			} else {
				a.frame = len(c.Frames) - 1
			}
		}
	}
}

func (a *Animator) settle() {
	a.progress = 1
	a.cur = a.next
	a.pending = false
	a.frame = 0
	a.acc = 0
}

func (a *Animator) clip() *Clip {
	if a.cur < NumStates && a.clips[a.cur] != nil {
		return a.clips[a.cur]
	}
	return a.clips[Idle]
}

// Frame returns the sprite to draw. An unbound state or out-of-range frame
// falls back to the first idle frame.
func (a *Animator) Frame() *gfx.Sprite {
	if c := a.clip(); c != nil && a.frame >= 0 && a.frame < len(c.Frames) && c.Frames[a.frame] != nil {
		return c.Frames[a.frame]
	}
	if idle := a.clips[Idle]; idle != nil && len(idle.Frames) > 0 {
		return idle.Frames[0]
	}
	return nil
}
