//go:build !tinygo

package hal

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// HostConfig selects the host-side backends.
type HostConfig struct {
	LogLevel  string
	LogFormat string
	// LogPath redirects log output to a file (terminal mode owns the tty).
	LogPath   string
	FlashPath string
}

type hostHAL struct {
	logger  *hostLogger
	led     *hostLED
	fb      *Framebuffer
	buttons *hostButtons
	t       *hostTime
	flash   *FileFlash
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	logger := newHostLogger(cfg.LogLevel, cfg.LogFormat, cfg.LogPath)
	h := &hostHAL{
		logger:  logger,
		led:     &hostLED{logger: logger},
		fb:      NewFramebuffer(PanelWidth, PanelHeight),
		buttons: &hostButtons{},
		t:       &hostTime{epoch: time.Now()},
	}
	fl, err := openHostFlash(cfg.FlashPath)
	if err != nil {
		logger.WriteLineString("warn: " + err.Error() + "; running without flash")
	} else {
		h.flash = fl
	}
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Backlight() LED   { return h.led }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{b: h.buttons} }
func (h *hostHAL) Time() Time       { return h.t }

// Flash is nil when the image could not be opened.
func (h *hostHAL) Flash() Flash {
	if h.flash == nil {
		return nil
	}
	return h.flash
}

func (h *hostHAL) close() {
	if h.flash != nil {
		_ = h.flash.Close()
	}
	_ = h.logger.z.Sync()
}

// hostTime counts from HAL creation. Micros wraps after about 71 minutes,
// like the MCU timer.
type hostTime struct {
	epoch time.Time
}

func (t *hostTime) Micros() uint32 { return uint32(time.Since(t.epoch).Microseconds()) }

func (t *hostTime) SleepMicros(us uint32) {
	if us > 0 {
		time.Sleep(time.Duration(us) * time.Microsecond)
	}
}

type hostDisplay struct {
	fb *Framebuffer
}

func (d hostDisplay) Surface() Surface { return d.fb }

type hostInput struct {
	b *hostButtons
}

func (in hostInput) Buttons() Buttons { return in.b }

// hostLogger forwards lines to zap. A "debug: ", "warn: " or "error: "
// prefix selects the level; everything else is info.
type hostLogger struct {
	z *zap.Logger
}

func newHostLogger(level, format, path string) *hostLogger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.OutputPaths = []string{"stderr"}
	if path != "" {
		zapCfg.OutputPaths = []string{path}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := zapCfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &hostLogger{z: z}
}

func (l *hostLogger) WriteLineString(s string) {
	switch {
	case strings.HasPrefix(s, "debug: "):
		l.z.Debug(s[len("debug: "):])
	case strings.HasPrefix(s, "warn: "):
		l.z.Warn(s[len("warn: "):])
	case strings.HasPrefix(s, "error: "):
		l.z.Error(s[len("error: "):])
	default:
		l.z.Info(s)
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("debug: backlight on")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("debug: backlight off")
}

// hostButtons merges keys held in a window with timed pulses from backends
// that only see key presses (terminals).
type hostButtons struct {
	mu     sync.Mutex
	held   ButtonMask
	pulses [3]time.Time
}

const hostButtonPulse = 250 * time.Millisecond

func (b *hostButtons) setHeld(m ButtonMask) {
	b.mu.Lock()
	b.held = m
	b.mu.Unlock()
}

func (b *hostButtons) pulse(m ButtonMask, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.pulses {
		if m&(1<<i) != 0 {
			b.pulses[i] = now.Add(hostButtonPulse)
		}
	}
}

func (b *hostButtons) Levels() ButtonMask {
	return b.levelsAt(time.Now())
}

func (b *hostButtons) levelsAt(now time.Time) ButtonMask {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.held
	for i, until := range b.pulses {
		if now.Before(until) {
			m |= 1 << i
		}
	}
	return m
}
