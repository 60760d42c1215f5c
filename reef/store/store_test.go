package store

import (
	"errors"
	"testing"
	"time"

	"ozean/hal"
	"ozean/reef/config"
)

type fakeClock struct{ us uint32 }

func (c *fakeClock) Micros() uint32 { return c.us }
func (c *fakeClock) advance(d time.Duration) {
	c.us += uint32(d / time.Microsecond)
}

func newStore(t *testing.T, f hal.Flash, clk *fakeClock) *Store {
	t.Helper()
	s, err := New(f, clk, config.Default().Save, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestChecksumIsCCITTFalse(t *testing.T) {
	if got := checksum([]byte("123456789")); got != 0x29B1 {
		t.Fatalf("checksum=%#04x, want 0x29b1", got)
	}
}

func TestBlankFlashHasNoSave(t *testing.T) {
	s := newStore(t, hal.NewMemFlash(64*1024, 4096), &fakeClock{})
	if s.HasSave() {
		t.Fatalf("HasSave on blank flash")
	}
	if _, err := s.LoadFull(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("LoadFull err=%v, want ErrNoSave", err)
	}
	if _, err := s.LoadStats(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("LoadStats err=%v, want ErrNoSave", err)
	}
}

func TestFullRoundTrip(t *testing.T) {
	flash := hal.NewMemFlash(64*1024, 4096)
	clk := &fakeClock{}
	s := newStore(t, flash, clk)
	want := Full{Hunger: 12, Fun: 97, Energy: 3, HP: -1, AgeSec: 0x01020304, Dead: true}
	if ok, err := s.SaveFullIfDue(want, true); err != nil || !ok {
		t.Fatalf("SaveFullIfDue=%v,%v", ok, err)
	}

	s2 := newStore(t, flash, clk)
	if !s2.HasSave() {
		t.Fatalf("HasSave false after save")
	}
	got, err := s2.LoadFull()
	if err != nil {
		t.Fatalf("LoadFull: %v", err)
	}
	if got != want {
		t.Fatalf("LoadFull=%+v, want %+v", got, want)
	}
}

func TestFlippedChecksumBitIsCorrupt(t *testing.T) {
	flash := hal.NewMemFlash(64*1024, 4096)
	clk := &fakeClock{}
	s := newStore(t, flash, clk)
	if _, err := s.SaveFullIfDue(Full{Hunger: 40, Fun: 50, Energy: 60, HP: 20, AgeSec: 99}, true); err != nil {
		t.Fatalf("save: %v", err)
	}

	var crc [2]byte
	flash.ReadAt(crc[:], fullOffset+18)
	i := 0
	if crc[0] == 0 {
		i = 1
	}
	crc[i] &= crc[i] - 1 // clear the lowest set bit
	if _, err := flash.WriteAt(crc[:], fullOffset+18); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	s2 := newStore(t, flash, clk)
	if s2.HasSave() {
		t.Fatalf("HasSave true with bad checksum")
	}
	_, err := s2.LoadFull()
	if !errors.Is(err, ErrCorrupt) || !errors.Is(err, ErrNoSave) {
		t.Fatalf("LoadFull err=%v, want ErrCorrupt wrapping ErrNoSave", err)
	}
}

func TestSaveRateLimits(t *testing.T) {
	clk := &fakeClock{}
	s := newStore(t, hal.NewMemFlash(64*1024, 4096), clk)
	f := Full{Hunger: 1, HP: 20}
	if ok, _ := s.SaveFullIfDue(f, false); !ok {
		t.Fatalf("first autosave not written")
	}
	if ok, _ := s.SaveFullIfDue(f, true); ok {
		t.Fatalf("unchanged values rewritten")
	}

	f.Hunger = 2
	clk.advance(10 * time.Second)
	if ok, _ := s.SaveFullIfDue(f, true); ok {
		t.Fatalf("event save after 10s written")
	}
	clk.advance(21 * time.Second)
	if ok, _ := s.SaveFullIfDue(f, true); !ok {
		t.Fatalf("event save after 31s not written")
	}

	f.Hunger = 3
	clk.advance(5 * time.Minute)
	if ok, _ := s.SaveFullIfDue(f, false); ok {
		t.Fatalf("autosave after 5m written")
	}
	clk.advance(5 * time.Minute)
	if ok, _ := s.SaveFullIfDue(f, false); !ok {
		t.Fatalf("autosave after 10m not written")
	}
}

func TestRateLimitAcrossCounterWrap(t *testing.T) {
	clk := &fakeClock{us: 0xFFFFFFFF - 1_000_000}
	s := newStore(t, hal.NewMemFlash(64*1024, 4096), clk)
	s.SaveFullIfDue(Full{HP: 1}, true)
	clk.advance(31 * time.Second)
	if ok, _ := s.SaveFullIfDue(Full{HP: 2}, true); !ok {
		t.Fatalf("event save across wrap not written")
	}
}

func TestLegacyRingKeepsNewest(t *testing.T) {
	flash := hal.NewMemFlash(64*1024, 4096)
	clk := &fakeClock{}
	s := newStore(t, flash, clk)
	for i := 0; i < 20; i++ {
		clk.advance(31 * time.Second)
		if ok, err := s.SaveStatsIfDue(Legacy{Hunger: int16(i), Fun: 1, Energy: 2}, true); !ok || err != nil {
			t.Fatalf("save %d: %v %v", i, ok, err)
		}
	}
	s2 := newStore(t, flash, clk)
	got, err := s2.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if got.Hunger != 19 {
		t.Fatalf("LoadStats=%+v, want hunger 19", got)
	}
	if s2.legacyIndex != 19%legacyCount || s2.legacySeq != 20 {
		t.Fatalf("index=%d seq=%d", s2.legacyIndex, s2.legacySeq)
	}
}

func TestLegacySequenceWraps(t *testing.T) {
	flash := hal.NewMemFlash(64*1024, 4096)
	s := newStore(t, flash, &fakeClock{})
	seqs := []uint16{0xFFFE, 0xFFFF, 0x0000, 0x0001}
	for i, seq := range seqs {
		rec := encodeLegacy(legacyRecord{seq: seq, Legacy: Legacy{Hunger: int16(i)}})
		if err := s.ee.WriteAt(rec[:], uint32(i*legacySize)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	s2 := newStore(t, flash, &fakeClock{})
	got, err := s2.LoadStats()
	if err != nil || got.Hunger != 3 {
		t.Fatalf("LoadStats=%+v,%v want hunger 3", got, err)
	}
}

func TestLegacyFallbackAndClear(t *testing.T) {
	flash := hal.NewMemFlash(64*1024, 4096)
	s := newStore(t, flash, &fakeClock{})
	s.SaveStatsIfDue(Legacy{Hunger: 5, Fun: 6, Energy: 7}, true)

	got, err := s.LoadFull()
	if err != nil {
		t.Fatalf("LoadFull: %v", err)
	}
	want := Full{Hunger: 5, Fun: 6, Energy: 7, HP: 20}
	if got != want {
		t.Fatalf("LoadFull=%+v, want %+v", got, want)
	}

	s.SaveFullIfDue(Full{Hunger: 1, HP: 20}, true)
	if err := s.ClearSave(); err != nil {
		t.Fatalf("ClearSave: %v", err)
	}
	s2 := newStore(t, flash, &fakeClock{})
	if s2.HasSave() {
		t.Fatalf("HasSave after ClearSave")
	}
	if _, err := s2.LoadStats(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("legacy ring survived ClearSave: %v", err)
	}
}

func TestEEPROMPreservesBlockNeighbours(t *testing.T) {
	flash := hal.NewMemFlash(16*1024, 4096)
	flash.WriteAt([]byte{0x12}, 4000)
	ee, err := NewEEPROM(flash, 1024, 1024)
	if err != nil {
		t.Fatalf("NewEEPROM: %v", err)
	}
	if err := ee.WriteAt([]byte{1, 2, 3}, 0); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	var b [1]byte
	flash.ReadAt(b[:], 4000)
	if b[0] != 0x12 {
		t.Fatalf("neighbour byte=%#x, want 0x12", b[0])
	}
	var got [3]byte
	flash.ReadAt(got[:], 1024)
	if got != [3]byte{1, 2, 3} {
		t.Fatalf("area=%v", got)
	}
	if err := ee.WriteAt(make([]byte, 2), 1023); err == nil {
		t.Fatalf("write past area accepted")
	}
}
