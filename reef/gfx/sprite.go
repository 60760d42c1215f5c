package gfx

// Transparent is the color key skipped by sprite blits.
const Transparent uint16 = 0xF81F

// Sprite is a packed RGB565 image. Pixels equal to Transparent are not drawn.
type Sprite struct {
	W, H int
	Pix  []uint16
}

func NewSprite(w, h int) *Sprite {
	s := &Sprite{W: w, H: h, Pix: make([]uint16, w*h)}
	for i := range s.Pix {
		s.Pix[i] = Transparent
	}
	return s
}

func (s *Sprite) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return Transparent
	}
	return s.Pix[y*s.W+x]
}

func (s *Sprite) Set(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	s.Pix[y*s.W+x] = c
}

func (s *Sprite) Bounds(x, y int) Rect { return R(x, y, s.W, s.H) }

const maxSpan = 64

// Draw paints the sprite with its top-left corner at (x, y). Opaque runs are
// written as spans; flip mirrors horizontally.
func (s *Sprite) Draw(t Target, x, y int, flip bool) {
	var buf [maxSpan]uint16
	for sy := 0; sy < s.H; sy++ {
		n, start := 0, 0
		for sx := 0; sx <= s.W; sx++ {
			c := Transparent
			if sx < s.W {
				src := sx
				if flip {
					src = s.W - 1 - sx
				}
				c = s.Pix[sy*s.W+src]
			}
			if c == Transparent || n == maxSpan {
				if n > 0 {
					t.WriteSpan(x+start, y+sy, buf[:n])
					n = 0
				}
				if c == Transparent {
					continue
				}
			}
			if n == 0 {
				start = sx
			}
			buf[n] = c
			n++
		}
	}
}

// DrawStippled paints only the pixels kept by the stipple band (1..4).
func (s *Sprite) DrawStippled(t Target, x, y int, flip bool, band int) {
	if band >= 4 {
		s.Draw(t, x, y, flip)
		return
	}
	for sy := 0; sy < s.H; sy++ {
		for sx := 0; sx < s.W; sx++ {
			src := sx
			if flip {
				src = s.W - 1 - sx
			}
			c := s.Pix[sy*s.W+src]
			if c == Transparent || !StippleKeep(sx, sy, band) {
				continue
			}
			t.SetPixel(x+sx, y+sy, c)
		}
	}
}
