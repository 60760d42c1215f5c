// Package store persists the pet in an emulated EEPROM: a ring of legacy
// three-stat records and one full record, each CRC protected. Writes are
// rate limited so flash is not worn by per-frame autosaves.
package store

import (
	"errors"
	"fmt"
	"time"

	"ozean/hal"
	"ozean/reef/config"
)

var (
	ErrNoSave  = errors.New("no save")
	ErrCorrupt = fmt.Errorf("%w: checksum mismatch", ErrNoSave)
)

// Micros is a wrapping microsecond counter; hal.Time satisfies it.
type Micros interface {
	Micros() uint32
}

type Store struct {
	ee  *EEPROM
	clk Micros
	cfg config.SaveConfig
	log hal.Logger

	lastSample uint32
	nowUs      uint64

	legacySeq   uint16
	legacyIndex int // -1 when the ring is empty
	legacySaved bool
	legacyAt    uint64
	legacyLast  Legacy
	legacyKnown bool

	fullSaved bool
	fullAt    uint64
	fullLast  Full
	fullKnown bool
}

// New opens the save area described by cfg on f.
func New(f hal.Flash, clk Micros, cfg config.SaveConfig, log hal.Logger) (*Store, error) {
	ee, err := NewEEPROM(f, cfg.AreaOffset, cfg.AreaSize)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if ee.Size() < fullOffset+fullSize {
		return nil, fmt.Errorf("store: area of %d bytes too small", ee.Size())
	}
	s := &Store{ee: ee, clk: clk, cfg: cfg, log: log, legacyIndex: -1}
	s.lastSample = clk.Micros()
	if _, _, err := s.latestLegacy(); err != nil && !errors.Is(err, ErrNoSave) {
		return nil, err
	}
	return s, nil
}

func (s *Store) logf(format string, args ...any) {
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// now returns a monotonic microsecond count built from the wrapping clock.
func (s *Store) now() uint64 {
	cur := s.clk.Micros()
	s.nowUs += uint64(cur - s.lastSample)
	s.lastSample = cur
	return s.nowUs
}

// due applies the event/autosave interval. The first save is always due.
func (s *Store) due(saved bool, at uint64, event bool) bool {
	if !saved {
		return true
	}
	interval := s.cfg.AutoInterval
	if event {
		interval = s.cfg.EventInterval
	}
	return s.now()-at >= uint64(interval/time.Microsecond)
}

func (s *Store) latestLegacy() (legacyRecord, int, error) {
	var buf [legacySize]byte
	best, bestIdx := legacyRecord{}, -1
	for i := 0; i < legacyCount; i++ {
		if err := s.ee.ReadAt(buf[:], uint32(legacyOffset+i*legacySize)); err != nil {
			return legacyRecord{}, -1, err
		}
		r, ok := decodeLegacy(buf[:])
		if !ok {
			continue
		}
		if bestIdx < 0 || int16(r.seq-best.seq) > 0 {
			best, bestIdx = r, i
		}
	}
	if bestIdx < 0 {
		return legacyRecord{}, -1, ErrNoSave
	}
	s.legacySeq, s.legacyIndex = best.seq, bestIdx
	return best, bestIdx, nil
}

// LoadStats returns the newest legacy record.
func (s *Store) LoadStats() (Legacy, error) {
	r, _, err := s.latestLegacy()
	if err != nil {
		return Legacy{}, err
	}
	s.legacyLast, s.legacyKnown = r.Legacy, true
	return r.Legacy, nil
}

// SaveStatsIfDue appends a legacy record when values changed and the
// interval for the save kind elapsed. It reports whether a record was written.
func (s *Store) SaveStatsIfDue(l Legacy, event bool) (bool, error) {
	if s.legacyKnown && l == s.legacyLast {
		return false, nil
	}
	if !s.due(s.legacySaved, s.legacyAt, event) {
		return false, nil
	}
	next := (s.legacyIndex + 1) % legacyCount
	rec := encodeLegacy(legacyRecord{seq: s.legacySeq + 1, Legacy: l})
	if err := s.ee.WriteAt(rec[:], uint32(legacyOffset+next*legacySize)); err != nil {
		return false, fmt.Errorf("store: write legacy record %d: %w", next, err)
	}
	s.legacySeq++
	s.legacyIndex = next
	s.legacySaved, s.legacyAt = true, s.now()
	s.legacyLast, s.legacyKnown = l, true
	s.logf("debug: save: legacy record %d seq %d", next, s.legacySeq)
	return true, nil
}

// HasSave reports whether LoadFull would succeed.
func (s *Store) HasSave() bool {
	_, err := s.peekFull()
	return err == nil
}

func (s *Store) peekFull() (Full, error) {
	var buf [fullSize]byte
	if err := s.ee.ReadAt(buf[:], fullOffset); err != nil {
		return Full{}, err
	}
	switch fullKind(buf[:]) {
	case headerFull:
		f, ok := decodeFull(buf[:])
		if !ok {
			return Full{}, ErrCorrupt
		}
		return f, nil
	case headerUnknown:
		return Full{}, ErrCorrupt
	}
	r, _, err := s.latestLegacy()
	if err != nil {
		return Full{}, err
	}
	return Full{Hunger: r.Hunger, Fun: r.Fun, Energy: r.Energy, HP: 20}, nil
}

// LoadFull returns the full record, or one built from the newest legacy
// record (HP 20, age 0) when only legacy data exists. Absent data reports
// ErrNoSave; a damaged full record reports ErrCorrupt.
func (s *Store) LoadFull() (Full, error) {
	f, err := s.peekFull()
	if err != nil {
		return Full{}, err
	}
	s.fullLast, s.fullKnown = f, true
	return f, nil
}

// SaveFullIfDue writes the full record when values changed and the interval
// for the save kind elapsed.
func (s *Store) SaveFullIfDue(f Full, event bool) (bool, error) {
	if s.fullKnown && f == s.fullLast {
		return false, nil
	}
	if !s.due(s.fullSaved, s.fullAt, event) {
		return false, nil
	}
	rec := encodeFull(f)
	if err := s.ee.WriteAt(rec[:], fullOffset); err != nil {
		return false, fmt.Errorf("store: write full record: %w", err)
	}
	s.fullSaved, s.fullAt = true, s.now()
	s.fullLast, s.fullKnown = f, true
	s.logf("save: hp %d age %ds dead %v", f.HP, f.AgeSec, f.Dead)
	return true, nil
}

// ClearSave wipes both record areas so no save is found afterwards.
func (s *Store) ClearSave() error {
	var zero [legacyCount * legacySize]byte
	if err := s.ee.WriteAt(zero[:], legacyOffset); err != nil {
		return fmt.Errorf("store: clear legacy ring: %w", err)
	}
	if err := s.ee.WriteAt(zero[:fullSize], fullOffset); err != nil {
		return fmt.Errorf("store: clear full record: %w", err)
	}
	s.legacySeq, s.legacyIndex = 0, -1
	s.legacySaved, s.legacyKnown = false, false
	s.fullSaved, s.fullKnown = false, false
	s.logf("save cleared")
	return nil
}
