package scene

import (
	"math"

	"ozean/reef/anim"
	"ozean/reef/config"
	"ozean/reef/gfx"
	"ozean/reef/pet"
	"ozean/reef/sprites"
)

const (
	actionBlend = 0.25
	moveBlend   = 0.2
)

// Fish is the pet's body: it steers between random waypoints, picks its
// animation from speed and queued actions, and triggers the effects of each
// action.
type Fish struct {
	st   *Stage
	cfg  config.FishConfig
	pet  *pet.Pet
	anim *anim.Animator

	bubbles   *Bubbles
	particles *Particles
	dirt      *Dirt

	x, y, vx, vy float64
	tx, ty       float64
	noise        float64
	noiseAcc     float64
	swim         float64

	sprite  *gfx.Sprite
	drawX   int
	drawY   int
	flip    bool
	visible bool
	prev    gfx.Footprint

	// OnAction runs after an action took effect.
	OnAction func(a pet.Action)
}

func NewFish(st *Stage, cfg config.FishConfig, p *pet.Pet, b *Bubbles, pt *Particles, d *Dirt) *Fish {
	f := &Fish{st: st, cfg: cfg, pet: p, bubbles: b, particles: pt, dirt: d}
	f.Reset()
	return f
}

// Reset puts the fish in the middle of the tank, idle.
func (f *Fish) Reset() {
	p := f.st.Play
	f.x = float64(p.X) + float64(p.W)/2
	f.y = float64(p.Y) + float64(p.H)/2
	f.vx, f.vy = 0, 0
	f.noise, f.noiseAcc, f.swim = 0, 0, 0
	f.anim = anim.New(f.st.Sheet.FishClips())
	f.prev.Clear()
	f.visible = false
	f.pickTarget()
}

func (f *Fish) Position() (x, y float64)   { return f.x, f.y }
func (f *Fish) Velocity() (vx, vy float64) { return f.vx, f.vy }
func (f *Fish) Animator() *anim.Animator   { return f.anim }

func (f *Fish) pickTarget() {
	p := f.st.Play
	f.tx = float64(p.X + 40 + f.st.intn(0, max(10, p.W-80)))
	f.ty = float64(p.Y + 20 + f.st.intn(0, max(10, p.H-60)))
}

// act applies one queued action and starts its animation and effects.
func (f *Fish) act(a pet.Action) {
	if !f.pet.Apply(a, f.dirt.Level()) {
		return
	}
	switch a {
	case pet.Feed:
		f.anim.Request(anim.Eating, actionBlend)
		f.particles.Burst(Crumb, f.x, f.y+10, 8)
	case pet.Play:
		f.anim.Request(anim.Playing, actionBlend)
		f.particles.Burst(Heart, f.x, f.y-10, 6)
	case pet.Rest:
		f.anim.Request(anim.Sleeping, actionBlend)
		f.particles.Burst(Zzz, f.x-15, f.y-20, 3)
	case pet.Clean:
		f.anim.Request(anim.Moving, actionBlend)
		f.particles.Burst(Puff, f.x, f.y, 12)
		f.dirt.Clean()
	case pet.Poop:
		f.anim.Request(anim.Pooping, actionBlend)
		f.dirt.Poop(int(f.x))
	}
	if f.OnAction != nil {
		f.OnAction(a)
	}
}

func (f *Fish) steer(dt float64) {
	c := f.cfg
	dx, dy := f.tx-f.x, f.ty-f.y
	dist := hypot(dx, dy)
	switch {
	case dist < c.ArriveRadius:
		f.pickTarget()
	case dist > 0.1:
		dirX, dirY := dx/dist, dy/dist
		desired := c.MaxSpeed
		if dist < c.EaseRadius {
			t := dist/c.EaseRadius - 1
			desired *= t*t*t + 1
		}
		wantX, wantY := dirX*desired, dirY*desired

		if hypot(f.vx, f.vy) > 5 {
			f.noiseAcc += dt * c.NoiseRate
			if f.noiseAcc > 1 {
				f.noise = f.st.uniform(-1, 1) * c.NoiseAmount
				f.noiseAcc = 0
			}
			wantX += -dirY * f.noise * c.MaxSpeed * 0.2
			wantY += dirX * f.noise * c.MaxSpeed * 0.2
		}

		sx, sy := wantX-f.vx, wantY-f.vy
		if m := hypot(sx, sy); m > c.SteerForce {
			sx, sy = sx/m*c.SteerForce, sy/m*c.SteerForce
		}
		f.vx += sx * dt
		f.vy += sy * dt
		if v := hypot(f.vx, f.vy); v > c.MaxSpeed {
			f.vx, f.vy = f.vx/v*c.MaxSpeed, f.vy/v*c.MaxSpeed
		}
		f.x += f.vx * dt
		f.y += f.vy * dt
	}

	norm := hypot(f.vx, f.vy) / c.MaxSpeed
	f.swim += norm * 2 * math.Pi * c.TailHz * dt
	if f.swim > 2*math.Pi {
		f.swim -= 2 * math.Pi
	}

	p := f.st.Play
	halfW, halfH := float64(sprites.FishW/2), float64(sprites.FishH/2)
	switch {
	case f.x < float64(p.X)+halfW:
		f.x, f.vx = float64(p.X)+halfW, math.Abs(f.vx)
	case f.x > float64(p.Right())-halfW:
		f.x, f.vx = float64(p.Right())-halfW, -math.Abs(f.vx)
	}
	switch {
	case f.y < float64(p.Y)+halfH:
		f.y, f.vy = float64(p.Y)+halfH, math.Abs(f.vy)
	case f.y > float64(p.Bottom())-halfH:
		f.y, f.vy = float64(p.Bottom())-halfH, -math.Abs(f.vy)
	}
}

// settle returns to idle or moving once an action animation has run out.
func (f *Fish) settle() {
	if f.pet.Busy() {
		return
	}
	want := anim.Idle
	if hypot(f.vx, f.vy) > f.cfg.MoveThreshold {
		want = anim.Moving
	}
	f.anim.Request(want, moveBlend)
}

func (f *Fish) Collect(dt float64) {
	if f.pet.Dead() {
		f.sprite = f.st.Sheet.FishDead
		f.flip = false
	} else {
		if f.pet.Queued() > 0 && f.st.Coord.Allow(gfx.OpMutate) {
			if a, ok := f.pet.Next(); ok {
				f.act(a)
			}
		}
		f.steer(dt)
		f.settle()
		f.anim.Update(dt)
		f.sprite = f.anim.Frame()
		f.flip = f.vx < 0
	}
	f.bubbles.SetOrigin(int(f.x), int(f.y))

	if f.sprite == nil {
		f.st.Tracker.AddPrev(grown(f.prev, f.cfg.RestoreMargin))
		f.prev.Clear()
		f.visible = false
		return
	}
	norm := hypot(f.vx, f.vy) / f.cfg.MaxSpeed
	amp := 1.0
	if f.anim.Transitioning() {
		amp = 0.4 + 0.6*f.anim.Progress()
	}
	swing := math.Sin(f.swim) * (3 + 3*norm) * amp
	bob := math.Sin(f.swim*0.7) * (2 + 2*norm) * amp
	f.drawX = int(f.x + swing - float64(f.sprite.W/2))
	f.drawY = int(f.y + bob - float64(f.sprite.H/2))

	r := f.sprite.Bounds(f.drawX, f.drawY)
	if !r.Overlaps(f.st.Play) {
		f.st.Tracker.AddPrev(grown(f.prev, f.cfg.RestoreMargin))
		f.prev.Clear()
		f.visible = false
		return
	}
	f.st.Tracker.AddPair(r.Grow(f.cfg.RestoreMargin), grown(f.prev, f.cfg.RestoreMargin))
	f.visible = true
}

func (f *Fish) Draw() {
	if !f.visible {
		return
	}
	f.sprite.Draw(f.st.Screen(), f.drawX, f.drawY, f.flip)
	f.prev = gfx.FootprintOf(f.sprite.Bounds(f.drawX, f.drawY))
}
