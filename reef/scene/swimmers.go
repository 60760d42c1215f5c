package scene

import (
	"math"

	"ozean/reef/config"
	"ozean/reef/gfx"
)

// Phaser supplies the shared animation phase.
type Phaser interface {
	AnimPhase() float64
}

type seahorse struct {
	sprite      *gfx.Sprite
	x, baseY    int
	rate, shift float64
	amp         float64

	y       int
	visible bool
	prev    gfx.Footprint
}

func (h *seahorse) bounds() gfx.Rect { return h.sprite.Bounds(h.x, h.y) }

// Seahorses are two anchored seahorses swaying up and down at their own
// rate.
type Seahorses struct {
	st    *Stage
	cfg   config.SeahorseConfig
	phase Phaser
	list  [2]seahorse
}

func NewSeahorses(st *Stage, cfg config.SeahorseConfig, phase Phaser) *Seahorses {
	p := st.Play
	return &Seahorses{
		st:    st,
		cfg:   cfg,
		phase: phase,
		list: [2]seahorse{
			{sprite: st.Sheet.Seahorse, x: p.X + p.W/4, baseY: st.GroundY - 24, rate: 0.7, amp: 5},
			{sprite: st.Sheet.TallSeahorse, x: p.X + p.W*3/5, baseY: st.GroundY - 44, rate: 0.5, shift: 1.5, amp: 4},
		},
	}
}

func (s *Seahorses) Reset() {
	for i := range s.list {
		s.list[i].prev.Clear()
		s.list[i].visible = false
	}
}

func (s *Seahorses) Collect(float64) {
	ph := s.phase.AnimPhase()
	m := s.cfg.SwayMargin
	for i := range s.list {
		h := &s.list[i]
		h.y = h.baseY + int(math.Sin(ph*h.rate+h.shift)*h.amp)
		r := h.bounds()
		if !r.Overlaps(s.st.Play) {
			s.st.Tracker.AddPrev(h.prev)
			h.prev.Clear()
			h.visible = false
			continue
		}
		s.st.Tracker.AddPair(gfx.R(r.X, r.Y-m, r.W, r.H+2*m), h.prev)
		h.visible = true
	}
}

func (s *Seahorses) Draw() {
	t := s.st.Screen()
	for i := range s.list {
		h := &s.list[i]
		if !h.visible {
			continue
		}
		h.sprite.Draw(t, h.x, h.y, false)
		h.prev = gfx.FootprintOf(h.bounds())
	}
}

// Shrimp walks along the sand between random targets.
type Shrimp struct {
	st  *Stage
	cfg config.ShrimpConfig

	x, y    float64
	targetX float64
	vx      float64
	left    bool
	walk    float64

	frame   int
	visible bool
	prev    gfx.Footprint
}

func NewShrimp(st *Stage, cfg config.ShrimpConfig) *Shrimp {
	s := &Shrimp{st: st, cfg: cfg}
	s.Reset()
	return s
}

func (s *Shrimp) Reset() {
	s.x = s.randomX()
	s.y = float64(s.st.GroundY - s.st.Sheet.Shrimp[0].H + 3)
	s.targetX = s.randomX()
	s.vx, s.walk, s.frame = 0, 0, 0
	s.prev.Clear()
	s.visible = false
}

func (s *Shrimp) randomX() float64 {
	p := s.st.Play
	return float64(s.st.intn(p.X, p.Right()-s.st.Sheet.Shrimp[0].W))
}

func (s *Shrimp) Collect(dt float64) {
	if math.Abs(s.x-s.targetX) < s.cfg.TargetThreshold {
		s.targetX = s.randomX()
		s.vx = 0
	}
	switch {
	case s.x < s.targetX:
		s.vx, s.left = s.cfg.Speed, false
	case s.x > s.targetX:
		s.vx, s.left = -s.cfg.Speed, true
	}
	s.x += s.vx * dt
	p := s.st.Play
	w := s.st.Sheet.Shrimp[0].W
	s.x = math.Max(float64(p.X), math.Min(s.x, float64(p.Right()-w)))

	if s.vx != 0 {
		s.walk += dt * s.cfg.WalkFPS
		s.frame = 1 + int(s.walk)%(len(s.st.Sheet.Shrimp)-1)
	} else {
		s.walk, s.frame = 0, 0
	}

	r := s.st.Sheet.Shrimp[s.frame].Bounds(int(s.x), int(s.y))
	if !r.Overlaps(p) {
		s.st.Tracker.AddPrev(s.prev)
		s.prev.Clear()
		s.visible = false
		return
	}
	s.st.Tracker.AddPair(r, s.prev)
	s.visible = true
}

func (s *Shrimp) Draw() {
	if !s.visible {
		return
	}
	sp := s.st.Sheet.Shrimp[s.frame]
	x, y := int(s.x), int(s.y)
	sp.Draw(s.st.Screen(), x, y, s.left)
	s.prev = gfx.FootprintOf(sp.Bounds(x, y))
}
