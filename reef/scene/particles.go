package scene

import (
	"math"

	"ozean/reef/config"
	"ozean/reef/gfx"
)

type ParticleKind uint8

const (
	Crumb ParticleKind = iota
	Heart
	Zzz
	Puff
)

type particle struct {
	x, y, vx, vy float64
	age, life    float64
	kind         ParticleKind
	alive        bool
	visible      bool
	prev         gfx.Footprint
}

// Particles is a fixed pool of short-lived effects. Crumbs and puffs sink,
// hearts and zzz rise; all fade out over their lifetime.
type Particles struct {
	st   *Stage
	cfg  config.ParticleConfig
	pool []particle
}

func NewParticles(st *Stage, cfg config.ParticleConfig) *Particles {
	return &Particles{st: st, cfg: cfg, pool: make([]particle, cfg.Pool)}
}

func (p *Particles) Reset() {
	for i := range p.pool {
		p.pool[i] = particle{}
	}
}

// Spawn takes a free slot; it reports false when the pool is full.
func (p *Particles) Spawn(kind ParticleKind, x, y, vx, vy, life float64) bool {
	for i := range p.pool {
		if p.pool[i].alive {
			continue
		}
		p.pool[i] = particle{x: x, y: y, vx: vx, vy: vy, life: life, kind: kind, alive: true}
		return true
	}
	return false
}

// Burst spawns n particles of one kind centered on (x, y) with the kind's
// launch profile.
func (p *Particles) Burst(kind ParticleKind, x, y float64, n int) {
	half := float64(p.st.Sheet.Crumb.W) / 2
	for i := 0; i < n; i++ {
		var vx, vy, life float64
		switch kind {
		case Crumb:
			vx, vy = p.st.uniform(-15, 15), p.st.uniform(-10, 5)
			life = p.st.uniform(1.2, 2)
		case Heart:
			vx, vy = p.st.uniform(-20, 20), p.st.uniform(-30, -15)
			life = p.st.uniform(1, 1.5)
		case Zzz:
			vx, vy = p.st.uniform(5, 15), p.st.uniform(-20, -10)
			life = p.st.uniform(1.5, 2)
		default:
			a := p.st.uniform(0, 2*math.Pi)
			speed := p.st.uniform(20, 50)
			vx, vy = math.Cos(a)*speed, math.Sin(a)*speed
			life = p.st.uniform(0.5, 1)
		}
		if !p.Spawn(kind, x-half, y-half, vx, vy, life) {
			return
		}
	}
}

func (p *Particles) Alive() int {
	n := 0
	for i := range p.pool {
		if p.pool[i].alive {
			n++
		}
	}
	return n
}

func (p *Particles) sprite(k ParticleKind) *gfx.Sprite {
	sh := p.st.Sheet
	switch k {
	case Crumb:
		return sh.Crumb
	case Heart:
		return sh.Heart
	case Zzz:
		return sh.Zzz
	default:
		return sh.Puff
	}
}

// force is the vertical acceleration for a kind.
func (p *Particles) force(k ParticleKind) float64 {
	g := p.cfg.Gravity
	switch k {
	case Crumb:
		return g
	case Heart:
		return -g * 0.5
	case Zzz:
		return -g * 0.25
	default:
		return g * 0.5
	}
}

func (p *Particles) Collect(dt float64) {
	for i := range p.pool {
		pt := &p.pool[i]
		if !pt.alive {
			continue
		}
		pt.vy += p.force(pt.kind) * dt
		pt.vx *= p.cfg.Damping
		pt.vy *= p.cfg.Damping
		pt.x += pt.vx * dt
		pt.y += pt.vy * dt
		pt.age += dt
		if pt.age >= pt.life {
			p.st.Tracker.AddPrev(grown(pt.prev, p.cfg.Margin))
			*pt = particle{}
			continue
		}
		r := p.sprite(pt.kind).Bounds(int(math.Floor(pt.x)), int(math.Floor(pt.y)))
		if !r.Overlaps(p.st.Play) {
			p.st.Tracker.AddPrev(grown(pt.prev, p.cfg.Margin))
			pt.prev.Clear()
			pt.visible = false
			continue
		}
		p.st.Tracker.AddPair(r.Grow(p.cfg.Margin), grown(pt.prev, p.cfg.Margin))
		pt.visible = true
	}
}

func (p *Particles) Draw() {
	t := p.st.Screen()
	for i := range p.pool {
		pt := &p.pool[i]
		if !pt.alive || !pt.visible {
			continue
		}
		alpha := 1 - pt.age/pt.life
		s := p.sprite(pt.kind)
		x, y := int(math.Floor(pt.x)), int(math.Floor(pt.y))
		s.DrawStippled(t, x, y, false, gfx.AlphaBand(alpha))
		pt.prev = gfx.FootprintOf(s.Bounds(x, y))
	}
}
