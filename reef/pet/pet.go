// Package pet simulates the fish's needs: hunger, fun, energy, health and
// age, plus the queue of actions chosen from the menu.
package pet

import (
	"fmt"
	"time"

	"ozean/reef/config"
)

type Action uint8

const (
	None Action = iota
	Feed
	Play
	Rest
	Clean
	Poop
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Feed:
		return "feed"
	case Play:
		return "play"
	case Rest:
		return "rest"
	case Clean:
		return "clean"
	case Poop:
		return "poop"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Stats is the persisted state of the pet.
type Stats struct {
	Hunger int // 0 full, 100 starving
	Fun    int // 0 bored, 100 happy
	Energy int // 0 exhausted, 100 rested
	HP     int
	AgeSec uint32
	Dead   bool
}

const queueSize = 4

type Pet struct {
	cfg config.PetConfig
	s   Stats

	tickAcc   float64
	damageAcc float64
	regenAcc  float64

	queue [queueSize]Action
	head  int
	n     int

	poopPending bool
	poopIn      float64
	busyFor     float64
}

// New returns a freshly hatched pet.
func New(cfg config.PetConfig) *Pet {
	p := &Pet{cfg: cfg}
	p.Reset()
	return p
}

// Reset starts a new pet.
func (p *Pet) Reset() {
	p.Restore(Stats{
		Hunger: p.cfg.Hunger,
		Fun:    p.cfg.Fun,
		Energy: p.cfg.Energy,
		HP:     p.cfg.BaseHP,
	})
}

// Restore replaces the stats (loaded save) and clears pending work.
func (p *Pet) Restore(s Stats) {
	p.s = s
	p.s.Hunger = clamp(s.Hunger, 0, 100)
	p.s.Fun = clamp(s.Fun, 0, 100)
	p.s.Energy = clamp(s.Energy, 0, 100)
	p.s.HP = clamp(s.HP, 0, p.MaxHP())
	if p.s.HP == 0 && !p.s.Dead {
		p.s.HP = 1
	}
	p.tickAcc, p.damageAcc, p.regenAcc = 0, 0, 0
	p.head, p.n = 0, 0
	p.poopPending, p.poopIn, p.busyFor = false, 0, 0
}

func (p *Pet) Stats() Stats { return p.s }
func (p *Pet) Dead() bool   { return p.s.Dead }

// MaxHP grows with age: a base value plus a bonus per full day, capped.
func (p *Pet) MaxHP() int {
	days := int(p.s.AgeSec / 86400)
	hp := p.cfg.BaseHP + days*p.cfg.HPPerDay
	if hp > p.cfg.MaxHP {
		hp = p.cfg.MaxHP
	}
	return hp
}

// Critical reports whether any need is in the damaging range.
func (p *Pet) Critical() bool {
	return p.s.Hunger >= p.cfg.CriticalHunger || p.s.Fun <= p.cfg.CriticalLow || p.s.Energy <= p.cfg.CriticalLow
}

// Busy is true while an action animation blocks menu input.
func (p *Pet) Busy() bool { return p.busyFor > 0 }

// Update advances the simulation by dt seconds. It returns true when at
// least one whole stat tick elapsed.
func (p *Pet) Update(dt float64) bool {
	if p.busyFor > 0 {
		p.busyFor -= dt
	}
	if p.s.Dead {
		return false
	}
	if p.poopPending {
		p.poopIn -= dt
		if p.poopIn <= 0 && p.Enqueue(Poop) {
			p.poopPending = false
		}
	}

	tick := p.cfg.Tick.Seconds()
	p.tickAcc += dt
	ticked := false
	for p.tickAcc >= tick && !p.s.Dead {
		p.tickAcc -= tick
		p.step(tick)
		ticked = true
	}
	return ticked
}

func (p *Pet) step(tick float64) {
	if p.s.Hunger < 100 {
		p.s.Hunger++
	}
	if p.s.Fun > 0 {
		p.s.Fun--
	}
	if p.s.Energy > 0 {
		p.s.Energy--
	}
	p.s.AgeSec++

	if p.Critical() {
		p.regenAcc = 0
		p.damageAcc += tick
		if p.damageAcc >= p.cfg.DamageEvery.Seconds() {
			p.damageAcc = 0
			p.s.HP--
		}
	} else {
		p.damageAcc = 0
		p.regenAcc += tick
		if p.regenAcc >= p.cfg.RegenEvery.Seconds() {
			p.regenAcc = 0
			if p.s.HP < p.MaxHP() {
				p.s.HP++
			}
		}
	}
	if p.s.HP <= 0 {
		p.s.HP = 0
		p.s.Dead = true
		p.n = 0
	}
}

// Enqueue adds an action to the ring. It fails when full or dead.
func (p *Pet) Enqueue(a Action) bool {
	if a == None || p.s.Dead || p.n == queueSize {
		return false
	}
	p.queue[(p.head+p.n)%queueSize] = a
	p.n++
	return true
}

// Next pops the oldest queued action.
func (p *Pet) Next() (Action, bool) {
	if p.n == 0 {
		return None, false
	}
	a := p.queue[p.head]
	p.head = (p.head + 1) % queueSize
	p.n--
	return a, true
}

func (p *Pet) Queued() int { return p.n }

// Apply performs an action's stat effects. dirt is the current total dirt
// level; cleaning a clean tank does nothing. It returns false when the action
// had no effect.
func (p *Pet) Apply(a Action, dirt int) bool {
	if p.s.Dead {
		return false
	}
	switch a {
	case Feed:
		p.s.Hunger = clamp(p.s.Hunger-20, 0, 100)
		p.s.Energy = clamp(p.s.Energy+5, 0, 100)
		p.poopPending = true
		p.poopIn = p.cfg.PoopDelay.Seconds()
	case Play:
		p.s.Fun = clamp(p.s.Fun+20, 0, 100)
		p.s.Energy = clamp(p.s.Energy-5, 0, 100)
	case Rest:
		p.s.Energy = clamp(p.s.Energy+20, 0, 100)
		p.s.Hunger = clamp(p.s.Hunger+5, 0, 100)
	case Clean:
		if dirt <= 0 {
			return false
		}
		p.s.Energy = clamp(p.s.Energy-10, 0, 100)
	case Poop:
	default:
		return false
	}
	p.busyFor = p.cfg.ActionLock.Seconds()
	return true
}

// Age returns the pet's age as a duration.
func (p *Pet) Age() time.Duration { return time.Duration(p.s.AgeSec) * time.Second }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
