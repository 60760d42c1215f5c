package scene

import (
	"ozean/reef/config"
	"ozean/reef/gfx"
)

type bubble struct {
	x, y    float64
	speed   float64
	big     bool
	active  bool
	visible bool
	prev    gfx.Footprint
}

// Bubbles is a fixed pool of rising bubbles fed by two timers: one releases
// small bubbles at the fish, the other a mixed batch from the floor.
type Bubbles struct {
	st   *Stage
	cfg  config.BubbleConfig
	pool []bubble

	fishTimer  float64
	floorTimer float64

	originX, originY int
	hasOrigin        bool
}

func NewBubbles(st *Stage, cfg config.BubbleConfig) *Bubbles {
	b := &Bubbles{st: st, cfg: cfg, pool: make([]bubble, cfg.Pool)}
	b.Reset()
	return b
}

// Reset deactivates every bubble and restarts both timers.
func (b *Bubbles) Reset() {
	for i := range b.pool {
		b.pool[i] = bubble{}
	}
	b.fishTimer = b.interval()
	b.floorTimer = b.interval()
}

func (b *Bubbles) interval() float64 {
	return b.cfg.IntervalMin + float64(b.st.intn(0, int(b.cfg.IntervalJitter)+1))
}

// SetOrigin moves the fish spawn point.
func (b *Bubbles) SetOrigin(x, y int) {
	b.originX, b.originY, b.hasOrigin = x, y, true
}

// Spawn takes a free slot. It reports false when the pool is exhausted.
func (b *Bubbles) Spawn(x, y, speed float64, big bool) bool {
	for i := range b.pool {
		if b.pool[i].active {
			continue
		}
		b.pool[i] = bubble{x: x, y: y, speed: speed, big: big, active: true}
		return true
	}
	return false
}

func (b *Bubbles) spawnRandom(x, y int, big bool) {
	speed := b.cfg.SpeedMin + float64(b.st.intn(0, int(b.cfg.SpeedJitter)+1))
	b.Spawn(float64(x), float64(y), speed, big)
}

// Active counts live bubbles.
func (b *Bubbles) Active() int {
	n := 0
	for i := range b.pool {
		if b.pool[i].active {
			n++
		}
	}
	return n
}

func (b *Bubbles) sprite(bb *bubble) *gfx.Sprite {
	if bb.big {
		return b.st.Sheet.MediumBubble
	}
	return b.st.Sheet.SmallBubble
}

func (b *Bubbles) Collect(dt float64) {
	play := b.st.Play
	if dt > 0 {
		if b.hasOrigin {
			b.fishTimer -= dt
			if b.fishTimer <= 0 {
				spread := b.cfg.FishSpread
				for i, n := 0, b.st.intn(1, 3); i < n; i++ {
					b.spawnRandom(b.originX+b.st.intn(-spread, spread+1), b.originY, false)
				}
				b.fishTimer = b.interval()
			}
		}
		b.floorTimer -= dt
		if b.floorTimer <= 0 {
			floor := play.Bottom() + b.cfg.FloorOffset
			small, medium := b.st.Sheet.SmallBubble.W, b.st.Sheet.MediumBubble.W
			for i := 0; i < 2; i++ {
				b.spawnRandom(play.X+b.st.intn(0, play.W-small), floor, false)
			}
			for i, n := 0, b.st.intn(1, 3); i < n; i++ {
				b.spawnRandom(play.X+b.st.intn(0, play.W-medium), floor, true)
			}
			b.floorTimer = b.interval()
		}
	}

	for i := range b.pool {
		bb := &b.pool[i]
		if !bb.active {
			continue
		}
		bb.y -= bb.speed * dt
		r := b.sprite(bb).Bounds(int(bb.x), int(bb.y))
		if r.Bottom() <= play.Y {
			b.st.Tracker.AddPrev(bb.prev)
			*bb = bubble{}
			continue
		}
		if !r.Overlaps(play) {
			b.st.Tracker.AddPrev(bb.prev)
			bb.prev.Clear()
			bb.visible = false
			continue
		}
		b.st.Tracker.AddPair(r, bb.prev)
		bb.visible = true
	}
}

func (b *Bubbles) Draw() {
	t := b.st.Screen()
	for i := range b.pool {
		bb := &b.pool[i]
		if !bb.active || !bb.visible {
			continue
		}
		s := b.sprite(bb)
		x, y := int(bb.x), int(bb.y)
		s.Draw(t, x, y, false)
		bb.prev = gfx.FootprintOf(s.Bounds(x, y))
	}
}
