// Package clock produces the per-frame delta time and paces the main loop.
package clock

import (
	"time"

	"ozean/hal"
	"ozean/reef/config"
)

const phaseWrap = 1000

// Clock turns a wrapping microsecond counter into a clamped, smoothed dt and
// sleeps away the rest of each frame budget.
type Clock struct {
	src hal.Time
	cfg config.ClockConfig

	started bool
	last    uint32
	next    uint32
	smooth  float64
	phase   float64
	resyncs uint32
}

func New(src hal.Time, cfg config.ClockConfig) *Clock {
	return &Clock{
		src:    src,
		cfg:    cfg,
		smooth: Clamp(cfg.InitialDT, cfg.DTMin, cfg.DTMax),
	}
}

// Clamp limits dt to [lo, hi].
func Clamp(dt, lo, hi float64) float64 {
	if dt < lo {
		return lo
	}
	if dt > hi {
		return hi
	}
	return dt
}

// Elapsed returns now-then in microseconds across counter wraparound.
func Elapsed(now, then uint32) uint32 { return now - then }

// Tick samples the counter and returns the smoothed frame delta in seconds.
// The first call only establishes the reference point.
func (c *Clock) Tick() float64 {
	now := c.src.Micros()
	if !c.started {
		c.started = true
		c.last = now
		c.next = now
		return c.smooth
	}
	raw := float64(Elapsed(now, c.last)) / 1e6
	c.last = now
	return c.Step(raw)
}

// Step feeds one raw delta (seconds) through clamp and smoothing.
func (c *Clock) Step(raw float64) float64 {
	dt := Clamp(raw, c.cfg.DTMin, c.cfg.DTMax)
	a := c.cfg.EMAAlpha
	c.smooth = c.smooth*(1-a) + dt*a
	c.phase += c.smooth * c.cfg.AnimPhaseRate
	for c.phase >= phaseWrap {
		c.phase -= phaseWrap
	}
	return c.smooth
}

// DT is the last smoothed delta.
func (c *Clock) DT() float64 { return c.smooth }

// AnimPhase is a slowly advancing phase used by ambient sway animations.
func (c *Clock) AnimPhase() float64 { return c.phase }

// Resyncs counts how often pacing gave up catching up.
func (c *Clock) Resyncs() uint32 { return c.resyncs }

// Pace sleeps until the next frame deadline. When the frame overran by more
// than one full period the deadline is moved to now.
func (c *Clock) Pace() {
	target := uint32(c.cfg.TargetFrame / time.Microsecond)
	if !c.started {
		c.started = true
		c.last = c.src.Micros()
		c.next = c.last
	}
	c.next += target
	now := c.src.Micros()
	sleep := int32(c.next - now)
	if sleep > 0 {
		c.src.SleepMicros(uint32(sleep))
		return
	}
	if sleep < -int32(target) {
		c.next = now
		c.resyncs++
	}
}

// Resync drops the timing history, used after a blocking modal screen.
func (c *Clock) Resync() {
	now := c.src.Micros()
	c.last = now
	c.next = now
	c.started = true
}
