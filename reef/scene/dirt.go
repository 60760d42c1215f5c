package scene

import (
	"ozean/reef/config"
	"ozean/reef/gfx"
)

// Spot is one patch of grime on the glass or a dropping on the sand.
type Spot struct {
	X, Y     int
	Kind     int
	Strength float64 // 0..100
	Age      float64
	Active   bool
	band     int
}

// Band is the stipple density the spot is drawn with.
func (s Spot) Band() int { return gfx.StippleBand(s.Strength) }

// Dirt grows spots that are part of the backdrop: they are stamped into the
// canvas once per visible change and restored with it instead of being
// painted every frame.
type Dirt struct {
	st    *Stage
	cfg   config.DirtConfig
	back  *Backdrop
	spots []Spot

	acc, next float64

	// Puff is called for each spot removed by Clean.
	Puff func(x, y float64, n int)
}

func NewDirt(st *Stage, cfg config.DirtConfig, back *Backdrop) *Dirt {
	d := &Dirt{st: st, cfg: cfg, back: back, spots: make([]Spot, cfg.MaxSpots)}
	back.attach(d)
	d.Reset()
	return d
}

// Reset removes every spot without effects; the caller re-renders the
// backdrop.
func (d *Dirt) Reset() {
	for i := range d.spots {
		d.spots[i] = Spot{}
	}
	d.acc = 0
	d.next = d.interval()
}

func (d *Dirt) interval() float64 {
	return d.st.uniform(d.cfg.IntervalMin, d.cfg.IntervalMax)
}

// Spots returns a copy of the pool.
func (d *Dirt) Spots() []Spot {
	out := make([]Spot, len(d.spots))
	copy(out, d.spots)
	return out
}

// Level is the summed strength of all spots, capped at 255.
func (d *Dirt) Level() int {
	total := 0
	for _, s := range d.spots {
		if s.Active {
			total += int(s.Strength)
		}
	}
	if total > 255 {
		return 255
	}
	return total
}

func (d *Dirt) sprite(s *Spot) *gfx.Sprite { return d.st.Sheet.Dirt[s.Kind%len(d.st.Sheet.Dirt)] }

func (d *Dirt) paintSpot(t gfx.Target, s *Spot) {
	d.sprite(s).DrawStippled(t, s.X, s.Y, false, s.band)
}

// paint draws every active spot at its current band.
func (d *Dirt) paint(t gfx.Target) {
	for i := range d.spots {
		if d.spots[i].Active {
			d.paintSpot(t, &d.spots[i])
		}
	}
}

// refresh stamps a spot into the backdrop and marks it for restore.
func (d *Dirt) refresh(s *Spot) {
	s.band = s.Band()
	d.back.stamp(func(t gfx.Target) { d.paintSpot(t, s) })
	d.st.Tracker.Add(d.sprite(s).Bounds(s.X, s.Y))
}

// Add places a spot in the first free slot.
func (d *Dirt) Add(x, y, kind int, strength float64) bool {
	for i := range d.spots {
		s := &d.spots[i]
		if s.Active {
			continue
		}
		*s = Spot{X: x, Y: y, Kind: kind, Strength: strength, Active: true}
		d.refresh(s)
		return true
	}
	return false
}

// Poop drops a spot on the sand near x.
func (d *Dirt) Poop(x int) bool {
	p := d.st.Play
	size := d.st.Sheet.Dirt[0].W
	spread := d.cfg.PoopSpread
	px := x + d.st.intn(-spread, spread+1) - size/2
	py := d.st.GroundY - size - 1 - d.st.intn(0, 6)
	px = clampInt(px, p.X, p.Right()-size)
	py = clampInt(py, d.st.GroundY-size-10, d.st.GroundY-size)
	return d.Add(px, py, d.st.intn(0, len(d.st.Sheet.Dirt)), d.cfg.PoopStrength)
}

// Clean removes every spot, puffing where each one was, and rebuilds the
// backdrop.
func (d *Dirt) Clean() {
	size := float64(d.st.Sheet.Dirt[0].W)
	for i := range d.spots {
		s := &d.spots[i]
		if !s.Active {
			continue
		}
		s.Active = false
		if d.Puff != nil {
			d.Puff(float64(s.X)+size/2, float64(s.Y)+size/2, d.cfg.PuffPerSpot)
		}
	}
	d.back.Render()
	d.st.Tracker.Add(d.st.Play)
}

func (d *Dirt) Collect(dt float64) {
	for i := range d.spots {
		s := &d.spots[i]
		if !s.Active {
			continue
		}
		s.Age += dt
		if s.Strength >= 100 {
			continue
		}
		s.Strength += d.cfg.GrowthPerSec * dt
		if s.Strength > 100 {
			s.Strength = 100
		}
		if s.Band() != s.band {
			d.refresh(s)
		}
	}

	d.acc += dt
	if d.acc < d.next {
		return
	}
	d.acc = 0
	d.next = d.interval()
	p := d.st.Play
	m := d.cfg.GlassMargin
	x := p.X + m + d.st.intn(0, max(10, p.W-2*m))
	y := p.Y + m + d.st.intn(0, max(10, p.H-d.cfg.GroundClearance-m))
	d.Add(x, y, d.st.intn(0, len(d.st.Sheet.Dirt)), d.cfg.StartStrength)
}

// Draw is empty: dirt is restored with the backdrop.
func (d *Dirt) Draw() {}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
