package hal

import (
	"errors"
	"testing"
)

func TestFramebufferClipsWrites(t *testing.T) {
	fb := NewFramebuffer(8, 4)

	fb.FillRect(-2, -2, 4, 4, 0x1234)
	if got := fb.Pixel(0, 0); got != 0x1234 {
		t.Fatalf("Pixel(0,0)=%#x, want 0x1234", got)
	}
	if got := fb.Pixel(2, 2); got != 0 {
		t.Fatalf("Pixel(2,2)=%#x, want 0", got)
	}

	fb.WriteSpan(6, 3, []uint16{1, 2, 3, 4})
	if fb.Pixel(6, 3) != 1 || fb.Pixel(7, 3) != 2 {
		t.Fatalf("span not written: %#x %#x", fb.Pixel(6, 3), fb.Pixel(7, 3))
	}

	fb.WriteSpan(-3, 1, []uint16{9, 9, 9, 5})
	if got := fb.Pixel(0, 1); got != 5 {
		t.Fatalf("left-clipped span Pixel(0,1)=%#x, want 5", got)
	}

	before := fb.Writes()
	fb.SetPixel(100, 100, 7)
	if fb.Writes() != before {
		t.Fatalf("out-of-bounds SetPixel counted as a write")
	}
}

func TestFramebufferBlitFull(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	if err := fb.BlitFull([]uint16{1}); err == nil {
		t.Fatalf("expected error for short buffer")
	}
	if err := fb.BlitFull([]uint16{1, 2, 3, 4}); err != nil {
		t.Fatalf("BlitFull: %v", err)
	}
	if fb.Pixel(1, 1) != 4 {
		t.Fatalf("Pixel(1,1)=%d, want 4", fb.Pixel(1, 1))
	}
}

func TestMemFlashRequiresErase(t *testing.T) {
	f := NewMemFlash(8192, 4096)

	if _, err := f.WriteAt([]byte{0x0F}, 10); err != nil {
		t.Fatalf("WriteAt on erased flash: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xF0}, 10); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("WriteAt setting bits: err=%v, want ErrFlashWriteRequiresErase", err)
	}
	if err := f.Erase(0, 4096); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, 10); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if buf[0] != 0xFF {
		t.Fatalf("byte after erase=%#x, want 0xff", buf[0])
	}
	if err := f.Erase(100, 4096); err == nil {
		t.Fatalf("expected unaligned erase to fail")
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	p := RGB565(0xFF, 0x00, 0xFF)
	if p != 0xF81F {
		t.Fatalf("RGB565(magenta)=%#x, want 0xf81f", p)
	}
	r, g, b := RGB888(p)
	if r != 0xFF || g != 0 || b != 0xFF {
		t.Fatalf("RGB888=%d,%d,%d", r, g, b)
	}
}
