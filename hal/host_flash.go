//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	HostFlashDefaultPath = "ozean.flash"
	HostFlashDefaultSize = 64 * 1024
	HostFlashEraseBlock  = 4096
	hostFlashPathEnv     = "OZEAN_FLASH_PATH"
)

// FileFlash is a NOR flash image on disk: erase sets bytes to 0xFF and
// writes may only clear bits.
type FileFlash struct {
	mu    sync.Mutex
	f     *os.File
	size  uint32
	erase uint32
	blank []byte
}

// OpenFileFlash opens path, creating an erased image of size bytes when the
// file is new or empty. An existing image keeps its size, which must be a
// multiple of erase.
func OpenFileFlash(path string, size, erase uint32) (*FileFlash, error) {
	if erase == 0 || erase%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase block %d", erase)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash image %q: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash image %q: %w", path, err)
	}
	fresh := st.Size() == 0
	if !fresh {
		if st.Size() > int64(^uint32(0)) {
			_ = f.Close()
			return nil, fmt.Errorf("flash image %q too large", path)
		}
		size = uint32(st.Size())
	}
	if size == 0 || size%erase != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("flash: size %d not a multiple of erase block %d", size, erase)
	}

	ff := &FileFlash{f: f, size: size, erase: erase, blank: make([]byte, erase)}
	for i := range ff.blank {
		ff.blank[i] = 0xFF
	}
	if fresh {
		if err := ff.Erase(0, size); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("erase flash image %q: %w", path, err)
		}
	}
	return ff, nil
}

// openHostFlash resolves the image path (flag, then $OZEAN_FLASH_PATH, then
// the default) for the host HAL.
func openHostFlash(path string) (*FileFlash, error) {
	if path == "" {
		path = os.Getenv(hostFlashPathEnv)
	}
	if path == "" {
		path = HostFlashDefaultPath
	}
	return OpenFileFlash(path, HostFlashDefaultSize, HostFlashEraseBlock)
}

func (f *FileFlash) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

func (f *FileFlash) SizeBytes() uint32       { return f.size }
func (f *FileFlash) EraseBlockBytes() uint32 { return f.erase }

func (f *FileFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, os.ErrClosed
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, errFlashRange)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}

func (f *FileFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, os.ErrClosed
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, errFlashRange)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}

	cur := make([]byte, len(p))
	if _, err := f.f.ReadAt(cur, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if cur[i]&p[i] != p[i] {
			return 0, fmt.Errorf("flash write at %d: %w", off+uint32(i), ErrFlashWriteRequiresErase)
		}
	}
	return f.f.WriteAt(p, int64(off))
}

// Erase resets whole erase blocks to 0xFF.
func (f *FileFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return os.ErrClosed
	}
	if size == 0 {
		return nil
	}
	if off%f.erase != 0 || size%f.erase != 0 || off+size > f.size || off+size < off {
		return fmt.Errorf("flash erase %d+%d: %w", off, size, errFlashRange)
	}
	for ; size > 0; off, size = off+f.erase, size-f.erase {
		if _, err := f.f.WriteAt(f.blank, int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
	}
	return nil
}
