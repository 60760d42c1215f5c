package gfx

import (
	"testing"

	"ozean/reef/config"
)

func TestTrackerClipsAndDropsEmpty(t *testing.T) {
	tr := NewTracker(R(0, 16, 320, 134), 8, 2, 0)

	if tr.Add(R(-10, -10, 5, 5)) {
		t.Fatalf("off-area rect accepted")
	}
	if tr.Add(R(10, 20, 0, 4)) {
		t.Fatalf("zero-width rect accepted")
	}
	tr.Add(R(-4, 10, 10, 10))
	rs := tr.Rects()
	if len(rs) != 1 {
		t.Fatalf("len=%d, want 1", len(rs))
	}
	if rs[0] != R(0, 16, 6, 4) {
		t.Fatalf("clipped rect=%+v, want {0 16 6 4}", rs[0])
	}
}

func TestTrackerOverflowCoversArea(t *testing.T) {
	area := R(0, 16, 320, 134)
	tr := NewTracker(area, 3, 0, 0)
	for i := 0; i < 3; i++ {
		tr.Add(R(10*i, 20, 4, 4))
	}
	if tr.Overflowed() {
		t.Fatalf("overflowed at capacity")
	}
	tr.Add(R(200, 100, 4, 4))
	if !tr.Overflowed() || tr.Len() != 1 || tr.Rects()[0] != area {
		t.Fatalf("overflow: overflowed=%v rects=%+v", tr.Overflowed(), tr.Rects())
	}
	tr.Add(R(50, 50, 2, 2))
	if tr.Len() != 1 {
		t.Fatalf("len=%d after overflow, want 1", tr.Len())
	}
	tr.Clear()
	if tr.Len() != 0 || tr.Overflowed() {
		t.Fatalf("clear left state behind")
	}
}

func TestTrackerAddPairPadsBoth(t *testing.T) {
	tr := NewTracker(R(0, 0, 320, 170), 8, 2, 0)
	tr.AddPair(R(100, 50, 10, 10), FootprintOf(R(130, 50, 10, 10)))
	rs := tr.Rects()
	if len(rs) != 2 {
		t.Fatalf("len=%d, want 2", len(rs))
	}
	if rs[0] != R(98, 48, 14, 14) || rs[1] != R(128, 48, 14, 14) {
		t.Fatalf("rects=%+v", rs)
	}

	tr.Clear()
	tr.AddPair(R(100, 50, 10, 10), Footprint{})
	if tr.Len() != 1 {
		t.Fatalf("invalid prev recorded: %+v", tr.Rects())
	}
}

func coverage(rs []Rect, w, h int) []bool {
	cov := make([]bool, w*h)
	for _, r := range rs {
		for y := r.Y; y < r.Bottom(); y++ {
			for x := r.X; x < r.Right(); x++ {
				cov[y*w+x] = true
			}
		}
	}
	return cov
}

type testRand uint32

func (r *testRand) intn(n int) int {
	x := uint32(*r)
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	*r = testRand(x)
	return int(x % uint32(n))
}

func randomTracker(seed uint32, tol int) *Tracker {
	rng := testRand(seed)
	tr := NewTracker(R(0, 0, 64, 48), 32, 0, tol)
	for i := 0; i < 12; i++ {
		tr.Add(R(rng.intn(60), rng.intn(44), 1+rng.intn(16), 1+rng.intn(12)))
	}
	return tr
}

func TestMergeExactKeepsCoverage(t *testing.T) {
	for seed := uint32(1); seed < 200; seed++ {
		tr := randomTracker(seed, 0)
		before := coverage(tr.Rects(), 64, 48)
		tr.Merge()
		after := coverage(tr.Rects(), 64, 48)
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("seed %d: coverage changed at pixel %d", seed, i)
			}
		}
	}
}

func TestMergeDefaultConfigKeepsCoverage(t *testing.T) {
	tol := config.Default().Dirty.MergeTolerance
	for seed := uint32(1); seed < 200; seed++ {
		tr := randomTracker(seed, tol)
		before := coverage(tr.Rects(), 64, 48)
		n := tr.Len()
		tr.Merge()
		after := coverage(tr.Rects(), 64, 48)
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("seed %d: coverage changed at pixel %d", seed, i)
			}
		}
		if tr.Len() > n {
			t.Fatalf("seed %d: merge grew list %d -> %d", seed, n, tr.Len())
		}

		once := tr.Rects()
		tr.Merge()
		twice := tr.Rects()
		if len(once) != len(twice) {
			t.Fatalf("seed %d: second merge changed list", seed)
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Fatalf("seed %d: second merge changed %+v -> %+v", seed, once[i], twice[i])
			}
		}
	}
}

func TestMergeDefaultConfigKeepsDiagonalNeighboursApart(t *testing.T) {
	d := config.Default().Dirty
	tr := NewTracker(R(0, 0, 100, 100), d.Capacity, 0, d.MergeTolerance)
	tr.Add(R(10, 10, 10, 10))
	tr.Add(R(22, 22, 10, 10))
	before := coverage(tr.Rects(), 100, 100)
	tr.Merge()
	if tr.Len() != 2 {
		t.Fatalf("rects=%+v, want both kept", tr.Rects())
	}
	after := coverage(tr.Rects(), 100, 100)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("coverage changed at pixel %d", i)
		}
	}
}

func TestMergeJoinsAlignedAndContained(t *testing.T) {
	tr := NewTracker(R(0, 0, 100, 100), 8, 0, 0)
	tr.Add(R(10, 10, 20, 10))
	tr.Add(R(10, 20, 20, 5))
	tr.Add(R(12, 12, 4, 4))
	tr.Add(R(60, 60, 5, 5))
	tr.Merge()
	rs := tr.Rects()
	if len(rs) != 2 {
		t.Fatalf("rects=%+v, want 2", rs)
	}
	if rs[0] != R(10, 10, 20, 15) {
		t.Fatalf("merged=%+v, want {10 10 20 15}", rs[0])
	}
}

func TestMergeToleranceJoinsNearby(t *testing.T) {
	tr := NewTracker(R(0, 0, 100, 100), 8, 0, 4)
	tr.Add(R(10, 10, 10, 10))
	tr.Add(R(23, 12, 10, 10))
	tr.Merge()
	if tr.Len() != 1 || tr.Rects()[0] != R(10, 10, 23, 12) {
		t.Fatalf("rects=%+v", tr.Rects())
	}
}
