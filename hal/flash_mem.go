package hal

import (
	"errors"
	"fmt"
	"sync"
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

var errFlashRange = errors.New("flash range out of bounds")

// MemFlash is a RAM-backed NOR flash: erase sets bytes to 0xFF and writes may
// only clear bits.
type MemFlash struct {
	mu        sync.Mutex
	buf       []byte
	eraseSize uint32
}

func NewMemFlash(size, eraseSize uint32) *MemFlash {
	f := &MemFlash{buf: make([]byte, size), eraseSize: eraseSize}
	for i := range f.buf {
		f.buf[i] = 0xFF
	}
	return f
}

func (f *MemFlash) SizeBytes() uint32       { return uint32(len(f.buf)) }
func (f *MemFlash) EraseBlockBytes() uint32 { return f.eraseSize }

func (f *MemFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= uint32(len(f.buf)) {
		return 0, fmt.Errorf("flash read at %d: %w", off, errFlashRange)
	}
	return copy(p, f.buf[off:]), nil
}

func (f *MemFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if off >= uint32(len(f.buf)) {
		return 0, fmt.Errorf("flash write at %d: %w", off, errFlashRange)
	}
	dst := f.buf[off:]
	if len(p) > len(dst) {
		p = p[:len(dst)]
	}
	for i := range p {
		if dst[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return copy(dst, p), nil
}

func (f *MemFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size == 0 {
		return nil
	}
	if f.eraseSize == 0 || off%f.eraseSize != 0 || size%f.eraseSize != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, errFlashRange)
	}
	if uint64(off)+uint64(size) > uint64(len(f.buf)) {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, errFlashRange)
	}
	for i := off; i < off+size; i++ {
		f.buf[i] = 0xFF
	}
	return nil
}
