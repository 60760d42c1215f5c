package gfx

// Target is anything pixels can be painted into: the panel, the background
// canvas, or a clipped view of either.
type Target interface {
	Width() int
	Height() int
	SetPixel(x, y int, c uint16)
	FillRect(x, y, w, h int, c uint16)
	HLine(x, y, w int, c uint16)
	WriteSpan(x, y int, px []uint16)
}

// Clipped restricts writes to a rectangle of the underlying target.
type Clipped struct {
	T    Target
	Clip Rect
}

func Clip(t Target, r Rect) Clipped { return Clipped{T: t, Clip: r} }

func (c Clipped) Width() int  { return c.T.Width() }
func (c Clipped) Height() int { return c.T.Height() }

func (c Clipped) SetPixel(x, y int, col uint16) {
	if c.Clip.ContainsPoint(x, y) {
		c.T.SetPixel(x, y, col)
	}
}

func (c Clipped) FillRect(x, y, w, h int, col uint16) {
	r := R(x, y, w, h).Intersect(c.Clip)
	if r.Empty() {
		return
	}
	c.T.FillRect(r.X, r.Y, r.W, r.H, col)
}

func (c Clipped) HLine(x, y, w int, col uint16) {
	r := R(x, y, w, 1).Intersect(c.Clip)
	if r.Empty() {
		return
	}
	c.T.HLine(r.X, r.Y, r.W, col)
}

func (c Clipped) WriteSpan(x, y int, px []uint16) {
	r := R(x, y, len(px), 1).Intersect(c.Clip)
	if r.Empty() {
		return
	}
	c.T.WriteSpan(r.X, r.Y, px[r.X-x:r.X-x+r.W])
}
