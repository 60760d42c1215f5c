//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"fmt"
	"machine"
)

// rp2Flash is the data region behind the firmware image. Sizes are read once
// at start-up.
type rp2Flash struct {
	size  uint32
	erase uint32
}

func newRP2Flash() Flash {
	return &rp2Flash{
		size:  clampU32(machine.Flash.Size()),
		erase: clampU32(machine.Flash.EraseBlockSize()),
	}
}

func clampU32(v int64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(v)
}

func (f *rp2Flash) SizeBytes() uint32       { return f.size }
func (f *rp2Flash) EraseBlockBytes() uint32 { return f.erase }

func (f *rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, errFlashRange)
	}
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f *rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, errFlashRange)
	}
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	return n, nil
}

func (f *rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if f.erase == 0 {
		return ErrNotImplemented
	}
	if off%f.erase != 0 || size%f.erase != 0 || off+size > f.size {
		return fmt.Errorf("flash erase %d+%d: %w", off, size, errFlashRange)
	}
	if err := machine.Flash.EraseBlocks(int64(off/f.erase), int64(size/f.erase)); err != nil {
		return fmt.Errorf("flash erase %d+%d: %w", off, size, err)
	}
	return nil
}
