package scene

import (
	"fmt"

	"ozean/reef/gfx"
)

// Compositor runs one frame: COLLECT every entity, merge the dirty list,
// RESTORE the backdrop under it, then DRAW every entity back to front.
type Compositor struct {
	st   *Stage
	back *Backdrop
	z    []Entity

	lastRects    int
	lastOverflow bool
}

// NewCompositor draws z in the given order, first entry at the back.
func NewCompositor(st *Stage, back *Backdrop, z ...Entity) *Compositor {
	return &Compositor{st: st, back: back, z: z}
}

// Frame advances the entities by dt seconds and repaints what changed.
func (c *Compositor) Frame(dt float64) error {
	st := c.st
	st.Tracker.Clear()
	if err := st.Coord.Begin(); err != nil {
		st.Coord.End()
		return fmt.Errorf("compositor: %w", err)
	}
	defer st.Coord.End()

	for _, e := range c.z {
		e.Collect(dt)
	}
	st.Tracker.Merge()
	c.lastRects, c.lastOverflow = st.Tracker.Len(), st.Tracker.Overflowed()

	s := st.Surface()
	s.BeginBatch()
	defer s.EndBatch()

	if err := st.Coord.Advance(gfx.PhaseRestore); err != nil {
		return fmt.Errorf("compositor: %w", err)
	}
	st.Tracker.ForEach(c.back.Restore)

	if err := st.Coord.Advance(gfx.PhaseDraw); err != nil {
		return fmt.Errorf("compositor: %w", err)
	}
	for _, e := range c.z {
		e.Draw()
	}
	return nil
}

// LastRects reports how many rectangles the previous frame restored and
// whether the list overflowed into a full-area restore.
func (c *Compositor) LastRects() (n int, overflowed bool) { return c.lastRects, c.lastOverflow }
