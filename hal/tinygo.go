//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"machine"

	"tinygo.org/x/drivers/st7789"
)

// Pin map for a Pico/Pico 2 wired to a 1.9" 170x320 ST7789 module.
const (
	pinLCDSCK = machine.GP18
	pinLCDSDO = machine.GP19
	pinLCDCS  = machine.GP17
	pinLCDDC  = machine.GP16
	pinLCDRST = machine.GP21
	pinLCDBL  = machine.GP20

	pinBtnLeft  = machine.GP2
	pinBtnOk    = machine.GP3
	pinBtnRight = machine.GP4
)

type tinyGoHAL struct {
	logger  *uartLogger
	led     *pinLED
	surface Surface
	buttons *pinButtons
	t       *tinyGoTime
	flash   Flash
}

// New returns a Pico (RP2040/RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	blPin := pinLCDBL
	blPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led := &pinLED{pin: blPin}

	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 62_500_000,
		SCK:       pinLCDSCK,
		SDO:       pinLCDSDO,
		Mode:      0,
	})
	lcd := st7789.New(machine.SPI0, pinLCDRST, pinLCDDC, pinLCDCS, pinLCDBL)
	lcd.Configure(st7789.Config{
		Width:        170,
		Height:       320,
		Rotation:     st7789.ROTATION_90,
		ColumnOffset: 35,
	})

	return &tinyGoHAL{
		logger:  &uartLogger{uart: uart},
		led:     led,
		surface: newLCDSurface(&lcd, PanelWidth, PanelHeight),
		buttons: newPinButtons(pinBtnLeft, pinBtnOk, pinBtnRight),
		t:       newTinyGoTime(),
		flash:   newRP2Flash(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Backlight() LED   { return h.led }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{s: h.surface} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{b: h.buttons} }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHAL) Time() Time       { return h.t }
