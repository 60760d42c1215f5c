// Package gfx holds the frame-phase rendering pieces: rectangles and
// footprints, the dirty-rect tracker, the background canvas, sprite blits and
// the phase coordinator that orders every pixel write in a frame.
package gfx

// Rect is an axis-aligned rectangle in panel coordinates.
type Rect struct {
	X, Y, W, H int
}

func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o; the result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Overlaps(o Rect) bool { return !r.Intersect(o).Empty() }

func (r Rect) Contains(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.Right() && y < r.Bottom()
}

// Grow expands r by n pixels on every side.
func (r Rect) Grow(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// gap returns the separation between r and o along each axis; negative
// values mean the projections overlap.
func (r Rect) gap(o Rect) (gx, gy int) {
	gx = max(r.X, o.X) - min(r.Right(), o.Right())
	gy = max(r.Y, o.Y) - min(r.Bottom(), o.Bottom())
	return gx, gy
}

// Footprint is the rectangle an entity painted (or will paint) in one frame.
// The zero value means "not on screen".
type Footprint struct {
	r  Rect
	ok bool
}

func FootprintOf(r Rect) Footprint { return Footprint{r: r, ok: true} }

func (f Footprint) Rect() (Rect, bool) { return f.r, f.ok }
func (f Footprint) Valid() bool        { return f.ok }
func (f *Footprint) Clear()            { *f = Footprint{} }
