package clock

import (
	"math"
	"testing"

	"ozean/reef/config"
)

type fakeTime struct {
	now    uint32
	sleeps []uint32
}

func (f *fakeTime) Micros() uint32 { return f.now }
func (f *fakeTime) SleepMicros(us uint32) {
	f.sleeps = append(f.sleeps, us)
	f.now += us
}

func TestTickClampsRawDeltas(t *testing.T) {
	cfg := config.Default().Clock
	cases := []struct {
		name    string
		advance uint32
	}{
		{"zero", 0},
		{"wrap", 0xFFFFFF00},
		{"huge", 5_000_000},
		{"normal", 16_000},
	}
	for _, tc := range cases {
		ft := &fakeTime{now: 0xFFFFFFF0}
		c := New(ft, cfg)
		c.Tick()
		for i := 0; i < 50; i++ {
			ft.now += tc.advance
			dt := c.Tick()
			if dt < cfg.DTMin || dt > cfg.DTMax {
				t.Fatalf("%s: dt=%v outside [%v,%v]", tc.name, dt, cfg.DTMin, cfg.DTMax)
			}
		}
	}
}

func TestTickWrapsCounter(t *testing.T) {
	cfg := config.Default().Clock
	cfg.EMAAlpha = 1
	ft := &fakeTime{now: 0xFFFFF000}
	c := New(ft, cfg)
	c.Tick()
	ft.now += 0x2000 // crosses zero; 8192us
	dt := c.Tick()
	if math.Abs(dt-0.008192) > 1e-9 {
		t.Fatalf("dt=%v, want 0.008192", dt)
	}
}

func TestStepSmooths(t *testing.T) {
	cfg := config.Default().Clock
	c := New(&fakeTime{}, cfg)
	got := c.Step(0.05)
	want := 0.0167*0.8 + 0.05*0.2
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Step=%v, want %v", got, want)
	}
	if c.AnimPhase() <= 0 {
		t.Fatalf("anim phase did not advance")
	}
}

func TestPaceSleepsRemainder(t *testing.T) {
	cfg := config.Default().Clock
	ft := &fakeTime{now: 1000}
	c := New(ft, cfg)
	c.Tick()
	ft.now += 6667
	c.Pace()
	if len(ft.sleeps) != 1 || ft.sleeps[0] != 10000 {
		t.Fatalf("sleeps=%v, want [10000]", ft.sleeps)
	}
}

func TestPaceResyncsAfterOverrun(t *testing.T) {
	cfg := config.Default().Clock
	ft := &fakeTime{now: 0}
	c := New(ft, cfg)
	c.Tick()
	ft.now += 200_000
	c.Pace()
	if len(ft.sleeps) != 0 || c.Resyncs() != 1 {
		t.Fatalf("sleeps=%v resyncs=%d", ft.sleeps, c.Resyncs())
	}
	ft.now += 1000
	c.Pace()
	if len(ft.sleeps) != 1 || ft.sleeps[0] != 15667 {
		t.Fatalf("after resync sleeps=%v, want [15667]", ft.sleeps)
	}
}
