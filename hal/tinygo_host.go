//go:build tinygo && !baremetal

package hal

import "time"

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	led    *tinyGoHostLED
	fb     *Framebuffer
	t      *tinyGoHostTime
	flash  Flash
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
func New() HAL {
	l := &tinyGoHostLogger{}
	return &tinyGoHostHAL{
		logger: l,
		led:    &tinyGoHostLED{logger: l},
		fb:     NewFramebuffer(PanelWidth, PanelHeight),
		t:      &tinyGoHostTime{start: time.Now()},
		flash:  NewMemFlash(16*1024, 4096),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Backlight() LED   { return h.led }
func (h *tinyGoHostHAL) Display() Display { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Input() Input     { return tinyGoHostInput{} }
func (h *tinyGoHostHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

type tinyGoHostDisplay struct {
	fb *Framebuffer
}

func (d tinyGoHostDisplay) Surface() Surface { return d.fb }

type tinyGoHostInput struct{}

func (tinyGoHostInput) Buttons() Buttons { return noButtons{} }

type noButtons struct{}

func (noButtons) Levels() ButtonMask { return 0 }

type tinyGoHostTime struct {
	start time.Time
}

func (t *tinyGoHostTime) Micros() uint32 {
	return uint32(time.Since(t.start) / time.Microsecond)
}

func (t *tinyGoHostTime) SleepMicros(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	on     bool
	logger *tinyGoHostLogger
}

func (l *tinyGoHostLED) High() {
	l.on = true
	l.logger.WriteLineString("backlight: on")
}

func (l *tinyGoHostLED) Low() {
	l.on = false
	l.logger.WriteLineString("backlight: off")
}
