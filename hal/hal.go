package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction (panel backlight).
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// ErrQuit is returned by an app step function to end a runner cleanly.
var ErrQuit = errors.New("quit")

// Surface is the physical panel: RGB565 pixel writes addressed in panel
// coordinates. Writes outside the panel are clipped by the implementation.
//
// BeginBatch/EndBatch bracket a burst of writes so bus-backed panels can keep
// chip-select asserted.
type Surface interface {
	Width() int
	Height() int
	BeginBatch()
	EndBatch()
	SetPixel(x, y int, c uint16)
	FillRect(x, y, w, h int, c uint16)
	HLine(x, y, w int, c uint16)
	// WriteSpan writes a horizontal run of pixels starting at (x, y).
	WriteSpan(x, y int, px []uint16)
	// BlitFull replaces the whole panel with a Width*Height buffer.
	BlitFull(px []uint16) error
}

// Display provides access to the panel (if available).
type Display interface {
	Surface() Surface
}

// ButtonMask is a set of logical buttons. Bit layout matches the wireless
// relay mask.
type ButtonMask uint8

const (
	ButtonLeft ButtonMask = 1 << iota
	ButtonOk
	ButtonRight
)

// Buttons reports the raw (undebounced) levels of the front buttons. A set
// bit means the button is held down.
type Buttons interface {
	Levels() ButtonMask
}

// Input provides access to input devices (if available).
type Input interface {
	Buttons() Buttons
}

// Flash provides raw access to non-volatile memory.
//
// It is intentionally low-level: addresses and erase blocks only.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Time provides a free-running microsecond counter. The counter wraps at
// 2^32; callers subtract with unsigned arithmetic.
type Time interface {
	Micros() uint32
	SleepMicros(us uint32)
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Logger() Logger
	Backlight() LED
	Display() Display
	Input() Input
	Flash() Flash
	Time() Time
}

// Panel geometry of the 1.9" ST7789 module in landscape.
const (
	PanelWidth  = 320
	PanelHeight = 170
)
