package store

import (
	"bytes"
	"fmt"

	"ozean/hal"
)

// EEPROM emulates byte-addressable storage on top of erase-block flash. The
// erase blocks covering the area are shadowed in RAM; a write that changes
// bytes erases those blocks and programs the shadow back.
type EEPROM struct {
	f      hal.Flash
	base   uint32 // area start inside flash
	size   uint32 // usable bytes
	block0 uint32 // first erase block offset
	shadow []byte // whole erase blocks covering the area
	loaded bool
}

func NewEEPROM(f hal.Flash, base, size uint32) (*EEPROM, error) {
	if f == nil {
		return nil, fmt.Errorf("eeprom: no flash: %w", hal.ErrNotImplemented)
	}
	erase := f.EraseBlockBytes()
	if erase == 0 {
		return nil, fmt.Errorf("eeprom: flash reports zero erase block")
	}
	if size == 0 || base+size > f.SizeBytes() || base+size < base {
		return nil, fmt.Errorf("eeprom: area %d+%d outside flash of %d bytes", base, size, f.SizeBytes())
	}
	block0 := base / erase * erase
	end := (base + size + erase - 1) / erase * erase
	return &EEPROM{
		f:      f,
		base:   base,
		size:   size,
		block0: block0,
		shadow: make([]byte, end-block0),
	}, nil
}

func (e *EEPROM) Size() uint32 { return e.size }

func (e *EEPROM) load() error {
	if e.loaded {
		return nil
	}
	if _, err := e.f.ReadAt(e.shadow, e.block0); err != nil {
		return fmt.Errorf("eeprom: read blocks at %d: %w", e.block0, err)
	}
	e.loaded = true
	return nil
}

func (e *EEPROM) span(off uint32, n int) (uint32, error) {
	if uint64(off)+uint64(n) > uint64(e.size) {
		return 0, fmt.Errorf("eeprom: access %d+%d beyond %d bytes", off, n, e.size)
	}
	return e.base - e.block0 + off, nil
}

// ReadAt fills p from offset off of the area.
func (e *EEPROM) ReadAt(p []byte, off uint32) error {
	if err := e.load(); err != nil {
		return err
	}
	start, err := e.span(off, len(p))
	if err != nil {
		return err
	}
	copy(p, e.shadow[start:])
	return nil
}

// WriteAt stores p at offset off of the area and commits it to flash.
func (e *EEPROM) WriteAt(p []byte, off uint32) error {
	if err := e.load(); err != nil {
		return err
	}
	start, err := e.span(off, len(p))
	if err != nil {
		return err
	}
	if bytes.Equal(e.shadow[start:start+uint32(len(p))], p) {
		return nil
	}
	copy(e.shadow[start:], p)
	return e.commit()
}

func (e *EEPROM) commit() error {
	if err := e.f.Erase(e.block0, uint32(len(e.shadow))); err != nil {
		return fmt.Errorf("eeprom: erase %d+%d: %w", e.block0, len(e.shadow), err)
	}
	if _, err := e.f.WriteAt(e.shadow, e.block0); err != nil {
		return fmt.Errorf("eeprom: program %d+%d: %w", e.block0, len(e.shadow), err)
	}
	return nil
}
