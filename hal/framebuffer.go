package hal

import "sync"

// Framebuffer is an in-memory Surface. Host runners mirror it into a window
// or terminal; tests use it as a pixel sink.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []uint16

	batch  int
	writes int
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		buf:    make([]uint16, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

func (f *Framebuffer) BeginBatch() {
	f.mu.Lock()
	f.batch++
	f.mu.Unlock()
}

func (f *Framebuffer) EndBatch() {
	f.mu.Lock()
	if f.batch > 0 {
		f.batch--
	}
	f.mu.Unlock()
}

func (f *Framebuffer) SetPixel(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.mu.Lock()
	f.buf[y*f.width+x] = c
	f.writes++
	f.mu.Unlock()
}

func (f *Framebuffer) FillRect(x, y, w, h int, c uint16) {
	x0, y0, x1, y1 := f.clip(x, y, w, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for yy := y0; yy < y1; yy++ {
		row := f.buf[yy*f.width+x0 : yy*f.width+x1]
		for i := range row {
			row[i] = c
		}
	}
	f.writes++
}

func (f *Framebuffer) HLine(x, y, w int, c uint16) {
	f.FillRect(x, y, w, 1, c)
}

func (f *Framebuffer) WriteSpan(x, y int, px []uint16) {
	if y < 0 || y >= f.height || len(px) == 0 {
		return
	}
	if x < 0 {
		if -x >= len(px) {
			return
		}
		px = px[-x:]
		x = 0
	}
	if x >= f.width {
		return
	}
	if x+len(px) > f.width {
		px = px[:f.width-x]
	}
	f.mu.Lock()
	copy(f.buf[y*f.width+x:], px)
	f.writes++
	f.mu.Unlock()
}

func (f *Framebuffer) BlitFull(px []uint16) error {
	if len(px) < len(f.buf) {
		return ErrNotImplemented
	}
	f.mu.Lock()
	copy(f.buf, px)
	f.writes++
	f.mu.Unlock()
	return nil
}

// Pixel returns the pixel at (x, y), or 0 outside the panel.
func (f *Framebuffer) Pixel(x, y int) uint16 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf[y*f.width+x]
}

// Writes reports how many write calls reached the buffer.
func (f *Framebuffer) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Snapshot copies the panel contents into dst.
func (f *Framebuffer) Snapshot(dst []uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

func (f *Framebuffer) clip(x, y, w, h int) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = x, y, x+w, y+h
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > f.width {
		x1 = f.width
	}
	if y1 > f.height {
		y1 = f.height
	}
	return x0, y0, x1, y1
}
