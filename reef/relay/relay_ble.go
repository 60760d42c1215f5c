//go:build !tinygo

package relay

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"

	"ozean/hal"
	"ozean/reef/input"
)

// Start enables the default adapter, registers the button service and
// advertises until ctx is done.
func Start(ctx context.Context, sink Sink, log hal.Logger) error {
	adapter := bluetooth.DefaultAdapter
	adapter.SetConnectHandler(func(_ bluetooth.Device, connected bool) {
		linkChanged(sink, log, connected)
	})
	if err := adapter.Enable(); err != nil {
		return fmt.Errorf("relay: enable adapter: %w", err)
	}
	svc, err := bluetooth.ParseUUID(ServiceUUID)
	if err != nil {
		return fmt.Errorf("relay: service uuid: %w", err)
	}
	chr, err := bluetooth.ParseUUID(ButtonsUUID)
	if err != nil {
		return fmt.Errorf("relay: characteristic uuid: %w", err)
	}

	var handle bluetooth.Characteristic
	err = adapter.AddService(&bluetooth.Service{
		UUID: svc,
		Characteristics: []bluetooth.CharacteristicConfig{{
			Handle: &handle,
			UUID:   chr,
			Flags:  bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
			WriteEvent: func(_ bluetooth.Connection, _ int, value []byte) {
				m := input.DecodeRelay(value)
				if m == 0 {
					return
				}
				sink.Relay(m)
				log.WriteLineString(fmt.Sprintf("debug: relay: %q -> %#02x", value, uint8(m)))
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("relay: add service: %w", err)
	}

	adv := adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    LocalName,
		ServiceUUIDs: []bluetooth.UUID{svc},
	}); err != nil {
		return fmt.Errorf("relay: configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return fmt.Errorf("relay: advertise: %w", err)
	}
	log.WriteLineString("relay: advertising as " + LocalName)

	go func() {
		<-ctx.Done()
		_ = adv.Stop()
		sink.ResetRelay()
	}()
	return nil
}
