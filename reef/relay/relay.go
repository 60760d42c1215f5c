// Package relay exposes the wireless button link: a BLE GATT peripheral with
// one writable characteristic whose first byte names a button press.
package relay

import "ozean/hal"

const (
	LocalName   = "AquariumPet"
	ServiceUUID = "8B3D0001-57B4-4DFE-8A3E-2F0D5A5B8C01"
	ButtonsUUID = "8B3D0002-57B4-4DFE-8A3E-2F0D5A5B8C01"
)

// Sink receives decoded presses; *input.Manager satisfies it.
type Sink interface {
	Relay(mask hal.ButtonMask)
	ResetRelay()
}

// linkChanged tracks the central's connection; a lost link drops presses
// that were relayed but not yet polled.
func linkChanged(sink Sink, log hal.Logger, connected bool) {
	state := "connected"
	if !connected {
		sink.ResetRelay()
		state = "disconnected"
	}
	if log != nil {
		log.WriteLineString("relay: " + state)
	}
}
