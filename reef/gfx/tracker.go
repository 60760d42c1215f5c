package gfx

// Tracker accumulates the rectangles that must be restored from the
// background before sprites are painted. Storage is fixed at construction.
type Tracker struct {
	bounds    Rect
	margin    int
	tolerance int

	rects      []Rect
	overflowed bool
}

// NewTracker returns a tracker clipping to bounds with room for capacity
// rectangles. margin pads AddPair footprints; tolerance is the gap in pixels
// across which Merge joins rectangles into their bounding box (0 joins only
// when no extra pixel is covered).
func NewTracker(bounds Rect, capacity, margin, tolerance int) *Tracker {
	if capacity < 1 {
		capacity = 1
	}
	return &Tracker{
		bounds:    bounds,
		margin:    margin,
		tolerance: tolerance,
		rects:     make([]Rect, 0, capacity),
	}
}

func (t *Tracker) Bounds() Rect { return t.bounds }

func (t *Tracker) Clear() {
	t.rects = t.rects[:0]
	t.overflowed = false
}

// Add clips r to the bounds and records it. Empty results are dropped. When
// the list is full every entry is replaced by one rectangle covering the
// whole bounds.
func (t *Tracker) Add(r Rect) bool {
	r = r.Intersect(t.bounds)
	if r.Empty() {
		return false
	}
	if t.overflowed {
		return true
	}
	if len(t.rects) == cap(t.rects) {
		t.rects = append(t.rects[:0], t.bounds)
		t.overflowed = true
		return true
	}
	t.rects = append(t.rects, r)
	return true
}

// AddPair records cur and, when valid, prev, both padded by the margin.
func (t *Tracker) AddPair(cur Rect, prev Footprint) {
	t.Add(cur.Grow(t.margin))
	if r, ok := prev.Rect(); ok {
		t.Add(r.Grow(t.margin))
	}
}

// AddPrev records only the previous footprint (the entity is not drawn this
// frame).
func (t *Tracker) AddPrev(prev Footprint) {
	if r, ok := prev.Rect(); ok {
		t.Add(r.Grow(t.margin))
	}
}

// Merge joins rectangles until no pair qualifies. Pairs whose bounding box
// covers exactly their pixels are always joined; pairs within the tolerance
// are joined into their bounding box when tolerance > 0.
func (t *Tracker) Merge() {
	for {
		merged := false
		for i := 0; i < len(t.rects); i++ {
			for j := i + 1; j < len(t.rects); j++ {
				if !t.joinable(t.rects[i], t.rects[j]) {
					continue
				}
				t.rects[i] = t.rects[i].Union(t.rects[j])
				last := len(t.rects) - 1
				t.rects[j] = t.rects[last]
				t.rects = t.rects[:last]
				j = i
				merged = true
			}
		}
		if !merged {
			return
		}
	}
}

func (t *Tracker) joinable(a, b Rect) bool {
	if a.Contains(b) || b.Contains(a) {
		return true
	}
	gx, gy := a.gap(b)
	if a.X == b.X && a.W == b.W && gy <= 0 {
		return true
	}
	if a.Y == b.Y && a.H == b.H && gx <= 0 {
		return true
	}
	return t.tolerance > 0 && gx <= t.tolerance && gy <= t.tolerance
}

func (t *Tracker) Len() int         { return len(t.rects) }
func (t *Tracker) Overflowed() bool { return t.overflowed }

func (t *Tracker) ForEach(fn func(Rect)) {
	for _, r := range t.rects {
		fn(r)
	}
}

// Rects returns a copy of the pending rectangles.
func (t *Tracker) Rects() []Rect {
	out := make([]Rect, len(t.rects))
	copy(out, t.rects)
	return out
}
