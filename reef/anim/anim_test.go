package anim

import (
	"testing"

	"ozean/reef/gfx"
)

func testClips() (Clips, []*gfx.Sprite) {
	f := []*gfx.Sprite{gfx.NewSprite(1, 1), gfx.NewSprite(1, 1), gfx.NewSprite(1, 1)}
	var c Clips
	c[Idle] = &Clip{Frames: f[:1], FPS: 1, Loop: true}
	c[Moving] = &Clip{Frames: []*gfx.Sprite{f[0], f[1], f[2]}, FPS: 10, Loop: true}
	c[Eating] = &Clip{Frames: []*gfx.Sprite{f[2], f[1]}, FPS: 10}
	return c, f
}

func TestRequestCurrentStateIsNoop(t *testing.T) {
	clips, _ := testClips()
	a := New(clips)
	a.Update(0.3)
	if a.Request(Idle, 0.2) {
		t.Fatalf("request to current state accepted")
	}
	if a.Transitioning() || a.Progress() != 1 {
		t.Fatalf("state changed: pending=%v progress=%v", a.Transitioning(), a.Progress())
	}

	if !a.Request(Moving, 0.2) {
		t.Fatalf("request to moving rejected")
	}
	a.Update(0.1)
	p := a.Progress()
	if a.Request(Moving, 5) {
		t.Fatalf("request to pending state accepted")
	}
	if a.Progress() != p {
		t.Fatalf("progress reset by duplicate request")
	}
}

func TestTransitionSnapsAndRestartsClip(t *testing.T) {
	clips, f := testClips()
	a := New(clips)
	a.Request(Moving, 0.2)
	a.Update(0.15)
	if a.State() != Idle || a.Progress() <= 0 || a.Progress() >= 1 {
		t.Fatalf("mid transition: state=%v progress=%v", a.State(), a.Progress())
	}
	a.Update(0.15)
	if a.State() != Moving || a.Progress() != 1 || a.FrameIndex() != 0 {
		t.Fatalf("after transition: state=%v progress=%v frame=%d", a.State(), a.Progress(), a.FrameIndex())
	}
	a.Update(0.25)
	if a.FrameIndex() != 2 || a.Frame() != f[2] {
		t.Fatalf("frame=%d, want 2", a.FrameIndex())
	}
	a.Update(0.1)
	if a.FrameIndex() != 0 {
		t.Fatalf("looping clip frame=%d, want 0", a.FrameIndex())
	}
}

func TestNonLoopingClipHoldsLastFrame(t *testing.T) {
	clips, f := testClips()
	a := New(clips)
	a.Request(Eating, 0)
	a.Update(1)
	if a.FrameIndex() != 1 || a.Frame() != f[1] {
		t.Fatalf("frame=%d, want last", a.FrameIndex())
	}
}

func TestUnboundStateFallsBackToIdle(t *testing.T) {
	clips, f := testClips()
	a := New(clips)
	a.Request(Sleeping, 0)
	if a.State() != Sleeping {
		t.Fatalf("state=%v", a.State())
	}
	if a.Frame() != f[0] {
		t.Fatalf("unbound state did not fall back to idle frame")
	}
	if New(Clips{}).Frame() != nil {
		t.Fatalf("empty clip set returned a frame")
	}
}
