// Package sprites builds every bitmap the aquarium draws. Images are
// generated once at start-up from simple shapes; gfx.Transparent marks
// background pixels.
package sprites

import (
	"math"

	"ozean/hal"
	"ozean/reef/anim"
	"ozean/reef/gfx"
)

// Sizes in pixels.
const (
	FishW, FishH         = 30, 25
	SmallBubbleSize      = 8
	MediumBubbleSize     = 16
	SeahorseW, SeahorseH = 16, 16
	TallHorseW           = 14
	TallHorseH           = 20
	ShrimpW, ShrimpH     = 16, 10
	DirtSize             = 8
	DirtKinds            = 4
	ParticleSize         = 8
	KelpW, KelpH         = 16, 32
	BrainW, BrainH       = 24, 16
	FanW, FanH           = 28, 24
	StoneSize            = 8
	StaghornSize         = 16
	TubeSize             = 16
	AnemoneW, AnemoneH   = 24, 20
)

var (
	orange    = hal.RGB565(255, 120, 0)
	darkOrng  = hal.RGB565(200, 80, 0)
	white     = hal.RGB565(255, 255, 255)
	black     = hal.RGB565(0, 0, 0)
	bubbleRim = hal.RGB565(150, 230, 255)
	bubbleIn  = hal.RGB565(40, 90, 160)
	yellow    = hal.RGB565(250, 210, 40)
	coralPink = hal.RGB565(250, 110, 140)
	algae     = hal.RGB565(90, 120, 40)
	algaeDark = hal.RGB565(60, 80, 30)
	brown     = hal.RGB565(120, 80, 30)
	crumbCol  = hal.RGB565(200, 150, 70)
	heartRed  = hal.RGB565(240, 40, 60)
	puffGray  = hal.RGB565(130, 120, 90)
	kelpGreen = hal.RGB565(30, 160, 60)
	kelpDark  = hal.RGB565(20, 100, 40)
	brainCol  = hal.RGB565(230, 150, 170)
	brainLine = hal.RGB565(170, 90, 110)
	fanPurple = hal.RGB565(170, 60, 200)
	stoneGray = hal.RGB565(120, 120, 130)
	stoneLite = hal.RGB565(170, 170, 180)
	stagTan   = hal.RGB565(220, 190, 140)
	tubeOrng  = hal.RGB565(240, 140, 50)
	tubeHole  = hal.RGB565(90, 40, 20)
	anemBase  = hal.RGB565(120, 40, 140)
	anemTip   = hal.RGB565(255, 150, 220)
)

// Sheet holds every sprite.
type Sheet struct {
	FishIdle  *gfx.Sprite
	FishMove  [2]*gfx.Sprite
	FishEat   *gfx.Sprite
	FishPlay  [3]*gfx.Sprite
	FishSleep *gfx.Sprite
	FishPoop  *gfx.Sprite
	FishDead  *gfx.Sprite

	SmallBubble  *gfx.Sprite
	MediumBubble *gfx.Sprite

	Seahorse     *gfx.Sprite
	TallSeahorse *gfx.Sprite

	// Shrimp[0] is the rest frame; the others form the walk cycle.
	Shrimp [3]*gfx.Sprite

	Dirt [DirtKinds]*gfx.Sprite

	Crumb, Heart, Zzz, Puff *gfx.Sprite

	Kelp, BrainCoral, FanCoral, Stone, Staghorn, Tube, Anemone *gfx.Sprite
}

// New renders the complete sheet.
func New() *Sheet {
	s := &Sheet{
		FishIdle:     fish(fishPose{}),
		FishMove:     [2]*gfx.Sprite{fish(fishPose{tail: -2}), fish(fishPose{tail: 2})},
		FishEat:      fish(fishPose{mouth: true}),
		FishSleep:    fish(fishPose{eyeClosed: true}),
		FishPoop:     fish(fishPose{poop: true}),
		SmallBubble:  bubble(SmallBubbleSize),
		MediumBubble: bubble(MediumBubbleSize),
		Seahorse:     seahorse(SeahorseW, SeahorseH, yellow),
		TallSeahorse: seahorse(TallHorseW, TallHorseH, coralPink),
		Crumb:        crumb(),
		Heart:        heart(),
		Zzz:          zzz(),
		Puff:         puff(),
		Kelp:         kelp(),
		BrainCoral:   brainCoral(),
		FanCoral:     fanCoral(),
		Stone:        stone(),
		Staghorn:     staghorn(),
		Tube:         tubeCoral(),
		Anemone:      anemone(),
	}
	for i := range s.FishPlay {
		s.FishPlay[i] = fish(fishPose{fin: i + 1, tail: i - 1})
	}
	dead := fish(fishPose{eyeX: true})
	s.FishDead = flipV(dead)
	for i := range s.Shrimp {
		s.Shrimp[i] = shrimp(i)
	}
	for k := range s.Dirt {
		s.Dirt[k] = dirt(k)
	}
	return s
}

// FishClips binds the fish frames to animation states.
func (s *Sheet) FishClips() anim.Clips {
	var c anim.Clips
	c[anim.Idle] = &anim.Clip{Frames: []*gfx.Sprite{s.FishIdle}, FPS: 1, Loop: true}
	c[anim.Moving] = &anim.Clip{
		Frames: []*gfx.Sprite{s.FishIdle, s.FishMove[0], s.FishMove[1], s.FishMove[0], s.FishIdle},
		FPS:    10,
		Loop:   true,
	}
	c[anim.Eating] = &anim.Clip{Frames: []*gfx.Sprite{s.FishEat}, FPS: 1}
	c[anim.Playing] = &anim.Clip{Frames: s.FishPlay[:], FPS: 1, Loop: true}
	c[anim.Sleeping] = &anim.Clip{Frames: []*gfx.Sprite{s.FishSleep}, FPS: 1, Loop: true}
	c[anim.Pooping] = &anim.Clip{Frames: []*gfx.Sprite{s.FishPoop}, FPS: 1}
	return c
}

type fishPose struct {
	tail      int // vertical tail tip offset
	fin       int // dorsal fin lift
	mouth     bool
	eyeClosed bool
	eyeX      bool
	poop      bool
}

// fish draws a clownfish facing right.
func fish(p fishPose) *gfx.Sprite {
	s := gfx.NewSprite(FishW, FishH)
	const cx, cy, rx, ry = 17.0, 12.5, 11.0, 8.0

	for x := 0; x <= 7; x++ {
		spread := 2 + (7-x)*5/7
		mid := 12 + p.tail*(7-x)/7
		for y := mid - spread; y <= mid+spread; y++ {
			s.Set(x, y, orange)
		}
		s.Set(x, mid-spread, black)
		s.Set(x, mid+spread, black)
	}

	finTop := 2 - p.fin
	if finTop < 0 {
		finTop = 0
	}
	for x := 13; x <= 21; x++ {
		h := 5 - abs(x-17)/2
		for y := finTop + (5 - h); y < 6; y++ {
			s.Set(x, y, darkOrng)
		}
	}

	fillEllipse(s, cx, cy, rx, ry, black)
	fillEllipse(s, cx, cy, rx-1, ry-1, orange)

	inBody := func(x, y int) bool { return inEllipse(x, y, cx, cy, rx-1, ry-1) }
	for _, band := range [][2]int{{11, 13}, {19, 21}} {
		recolor(s, orange, black, func(x, y int) bool { return inBody(x, y) && (x == band[0]-1 || x == band[1]+1) })
		recolor(s, orange, white, func(x, y int) bool { return inBody(x, y) && x >= band[0] && x <= band[1] })
	}
	fillEllipse(s, 16, 17, 3, 1.5, darkOrng)

	switch {
	case p.eyeX:
		line(s, 22, 8, 25, 11, black)
		line(s, 22, 11, 25, 8, black)
	case p.eyeClosed:
		line(s, 22, 10, 25, 10, black)
	default:
		fillCircle(s, 24, 10, 2, white)
		s.Set(24, 10, black)
		s.Set(24, 9, black)
	}
	if p.mouth {
		fillRect(s, 26, 12, 2, 3, black)
	} else {
		line(s, 25, 14, 27, 14, darkOrng)
	}
	if p.poop {
		fillRect(s, 4, 19, 3, 2, brown)
	}
	return s
}

func bubble(size int) *gfx.Sprite {
	s := gfx.NewSprite(size, size)
	c := float64(size) / 2
	fillCircle(s, c, c, c-0.5, bubbleIn)
	ring(s, c, c, c-0.5, bubbleRim)
	hl := size / 4
	s.Set(hl, hl, white)
	if size >= 16 {
		s.Set(hl+1, hl, white)
		s.Set(hl, hl+1, white)
	}
	return s
}

func seahorse(w, h int, body uint16) *gfx.Sprite {
	s := gfx.NewSprite(w, h)
	fw, fh := float64(w), float64(h)
	headR := fw * 0.18
	hx, hy := fw*0.6, headR+0.5
	fillCircle(s, hx, hy, headR, body)
	line(s, int(hx+headR), int(hy), w-1, int(hy), body)
	fillEllipse(s, fw*0.5, fh*0.5, fw*0.2, fh*0.25, body)
	for y := int(fh * 0.3); y < int(fh*0.72); y += 2 {
		s.Set(int(fw*0.3), y, body)
	}
	ring(s, fw*0.45, fh*0.82, fw*0.15, body)
	line(s, int(fw*0.55), int(fh*0.7), int(fw*0.55), int(fh*0.8), body)
	s.Set(int(hx)+1, int(hy)-1, black)
	return s
}

// shrimp draws a bee shrimp facing right; frame 0 is at rest.
func shrimp(frame int) *gfx.Sprite {
	s := gfx.NewSprite(ShrimpW, ShrimpH)
	fillEllipse(s, 8, 5, 6.5, 3, white)
	for x := 2; x < 15; x++ {
		if (x/3)%2 == 0 {
			recolor(s, white, black, func(xx, _ int) bool { return xx == x })
		}
	}
	line(s, 13, 3, 15, 0, black)
	line(s, 12, 3, 13, 0, black)
	s.Set(13, 4, heartRed)
	legs := []int{5, 8, 11}
	for i, lx := range legs {
		off := 0
		if frame > 0 && (i+frame)%2 == 0 {
			off = 1
		}
		s.Set(lx+off, 8, black)
		s.Set(lx, 9, black)
	}
	line(s, 0, 4, 2, 6, black)
	return s
}

func dirt(kind int) *gfx.Sprite {
	s := gfx.NewSprite(DirtSize, DirtSize)
	switch kind {
	case 0:
		fillCircle(s, 4, 4, 3.5, algae)
		fillCircle(s, 3, 3, 1.5, algaeDark)
	case 1:
		fillEllipse(s, 4, 4, 4, 2.5, algaeDark)
		fillEllipse(s, 5, 4, 2, 1.5, algae)
	case 2:
		fillCircle(s, 2, 2, 1.5, algae)
		fillCircle(s, 6, 3, 1.5, algaeDark)
		fillCircle(s, 3, 6, 1.5, algae)
	default:
		line(s, 0, 7, 7, 0, algaeDark)
		line(s, 1, 7, 7, 1, algae)
		line(s, 0, 6, 6, 0, algae)
	}
	return s
}

func crumb() *gfx.Sprite {
	s := gfx.NewSprite(ParticleSize, ParticleSize)
	fillRect(s, 3, 3, 3, 3, crumbCol)
	s.Set(4, 4, brown)
	return s
}

func heart() *gfx.Sprite {
	s := gfx.NewSprite(ParticleSize, ParticleSize)
	fillCircle(s, 2.5, 2.5, 1.8, heartRed)
	fillCircle(s, 5.5, 2.5, 1.8, heartRed)
	for y := 3; y < 7; y++ {
		for x := y - 3; x <= 10-y; x++ {
			s.Set(x, y, heartRed)
		}
	}
	return s
}

func zzz() *gfx.Sprite {
	s := gfx.NewSprite(ParticleSize, ParticleSize)
	line(s, 1, 1, 6, 1, white)
	line(s, 6, 1, 1, 6, white)
	line(s, 1, 6, 6, 6, white)
	return s
}

func puff() *gfx.Sprite {
	s := gfx.NewSprite(ParticleSize, ParticleSize)
	fillCircle(s, 4, 4, 2.5, puffGray)
	s.Set(3, 3, algae)
	return s
}

func kelp() *gfx.Sprite {
	s := gfx.NewSprite(KelpW, KelpH)
	for i, base := range []float64{4, 8, 12} {
		for y := 0; y < KelpH; y++ {
			if y < 4*i {
				continue
			}
			x := int(base + 1.8*math.Sin(float64(y)*0.35+float64(i)*1.7))
			s.Set(x, y, kelpGreen)
			s.Set(x+1, y, kelpDark)
			if y%7 == 3 {
				s.Set(x-1, y, kelpGreen)
				s.Set(x+2, y, kelpGreen)
			}
		}
	}
	return s
}

func brainCoral() *gfx.Sprite {
	s := gfx.NewSprite(BrainW, BrainH)
	fillEllipse(s, 12, 16, 12, 15, brainCol)
	for y := 0; y < BrainH; y++ {
		for x := 0; x < BrainW; x++ {
			if s.At(x, y) != brainCol {
				continue
			}
			if int(float64(y)+2*math.Sin(float64(x)*0.8))%4 == 0 {
				s.Set(x, y, brainLine)
			}
		}
	}
	return s
}

func fanCoral() *gfx.Sprite {
	s := gfx.NewSprite(FanW, FanH)
	ox, oy := FanW/2, FanH-1
	for i := 0; i <= 8; i++ {
		a := math.Pi * (0.1 + 0.8*float64(i)/8)
		x := ox - int(13*math.Cos(a))
		y := oy - int(22*math.Sin(a))
		line(s, ox, oy, x, y, fanPurple)
	}
	for _, r := range []float64{8, 14, 20} {
		for a := 0.1 * math.Pi; a <= 0.9*math.Pi; a += 0.02 {
			s.Set(ox-int(r*0.6*math.Cos(a)), oy-int(r*math.Sin(a)), fanPurple)
		}
	}
	return s
}

func stone() *gfx.Sprite {
	s := gfx.NewSprite(StoneSize, StoneSize)
	fillEllipse(s, 4, 5, 4, 3, stoneGray)
	s.Set(3, 3, stoneLite)
	s.Set(4, 3, stoneLite)
	return s
}

func staghorn() *gfx.Sprite {
	s := gfx.NewSprite(StaghornSize, StaghornSize)
	line(s, 8, 15, 8, 6, stagTan)
	line(s, 8, 10, 3, 4, stagTan)
	line(s, 8, 8, 13, 2, stagTan)
	line(s, 3, 4, 2, 1, stagTan)
	line(s, 5, 6, 6, 2, stagTan)
	line(s, 11, 5, 14, 5, stagTan)
	line(s, 8, 6, 9, 0, stagTan)
	return s
}

func tubeCoral() *gfx.Sprite {
	s := gfx.NewSprite(TubeSize, TubeSize)
	for i, h := range []int{10, 14, 8, 12} {
		x := 1 + i*4
		fillRect(s, x, TubeSize-h, 3, h, tubeOrng)
		s.Set(x+1, TubeSize-h, tubeHole)
	}
	return s
}

func anemone() *gfx.Sprite {
	s := gfx.NewSprite(AnemoneW, AnemoneH)
	fillEllipse(s, 12, 18, 8, 4, anemBase)
	for i := 0; i < 7; i++ {
		bx := 5 + i*2
		tx := 2 + i*(AnemoneW-4)/6
		ty := 3 + abs(3-i)
		line(s, bx, 15, tx, ty, anemBase)
		s.Set(tx, ty, anemTip)
		s.Set(tx, ty-1, anemTip)
	}
	return s
}
