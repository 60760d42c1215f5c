//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	s Surface
}

func (d tinyGoDisplay) Surface() Surface { return d.s }

type tinyGoInput struct {
	b Buttons
}

func (in tinyGoInput) Buttons() Buttons { return in.b }

type tinyGoTime struct {
	start time.Time
}

func newTinyGoTime() *tinyGoTime {
	return &tinyGoTime{start: time.Now()}
}

func (t *tinyGoTime) Micros() uint32 {
	return uint32(time.Since(t.start) / time.Microsecond)
}

func (t *tinyGoTime) SleepMicros(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// pinButtons reads pull-up buttons that short to ground when pressed.
type pinButtons struct {
	pins [3]machine.Pin
}

func newPinButtons(left, ok, right machine.Pin) *pinButtons {
	b := &pinButtons{pins: [3]machine.Pin{left, ok, right}}
	for _, p := range b.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	return b
}

func (b *pinButtons) Levels() ButtonMask {
	var m ButtonMask
	for i, p := range b.pins {
		if !p.Get() {
			m |= 1 << i
		}
	}
	return m
}
