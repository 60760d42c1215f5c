// Package scene runs the aquarium: the static backdrop, the animated
// entities and the compositor that drives them through the
// COLLECT → RESTORE → DRAW frame protocol.
package scene

import (
	"fmt"
	"math"
	"math/rand"

	"ozean/hal"
	"ozean/reef/config"
	"ozean/reef/gfx"
	"ozean/reef/sprites"
)

// Entity is one kind of animated object. Collect runs in COLLECT: it advances
// state and registers dirty rectangles. Draw runs in DRAW: it paints what
// Collect decided is visible and remembers the footprint for the next frame.
type Entity interface {
	Collect(dt float64)
	Draw()
}

// Stage is the shared context handed to every entity.
type Stage struct {
	Play    gfx.Rect
	GroundY int

	Tracker *gfx.Tracker
	Coord   *gfx.Coordinator
	Sheet   *sprites.Sheet
	Rand    *rand.Rand
	Log     hal.Logger

	surface hal.Surface
	screen  gfx.Target
}

// NewStage lays out the play area for s from the display settings.
func NewStage(s hal.Surface, cfg *config.Config, sheet *sprites.Sheet, seed int64, log hal.Logger) *Stage {
	d := cfg.Display
	play := gfx.R(0, d.StatusBarH, s.Width(), s.Height()-d.StatusBarH-d.BottomBarH)
	coord := gfx.NewCoordinator(log)
	return &Stage{
		Play:    play,
		GroundY: play.Bottom() - d.GroundH,
		Tracker: gfx.NewTracker(play, cfg.Dirty.Capacity, cfg.Dirty.Margin, cfg.Dirty.MergeTolerance),
		Coord:   coord,
		Sheet:   sheet,
		Rand:    rand.New(rand.NewSource(seed)),
		Log:     log,
		surface: s,
		screen:  gfx.Clip(gfx.Guarded{S: s, C: coord}, play),
	}
}

// Screen is the panel as entities see it: phase checked and clipped to the
// play area.
func (st *Stage) Screen() gfx.Target { return st.screen }

func (st *Stage) Surface() hal.Surface { return st.surface }

// intn returns an int in [lo, hi); hi <= lo yields lo.
func (st *Stage) intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + st.Rand.Intn(hi-lo)
}

// uniform returns a float in [lo, hi).
func (st *Stage) uniform(lo, hi float64) float64 {
	return lo + st.Rand.Float64()*(hi-lo)
}

func grown(f gfx.Footprint, n int) gfx.Footprint {
	if r, ok := f.Rect(); ok {
		return gfx.FootprintOf(r.Grow(n))
	}
	return f
}

func hypot(x, y float64) float64 { return math.Sqrt(x*x + y*y) }

func (st *Stage) logf(format string, args ...any) {
	if st.Log != nil {
		st.Log.WriteLineString(fmt.Sprintf(format, args...))
	}
}
