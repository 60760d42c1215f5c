//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Ticks stops the runner after that many steps; 0 runs until the app
	// quits or ctx ends.
	Ticks uint64
	Host  HostConfig
}

// RunHeadless steps the firmware at Hz with no display attached; the panel
// still renders into the in-memory framebuffer.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("headless: %d Hz is too fast", cfg.Hz)
	}

	h := newHost(cfg.Host)
	defer h.close()
	step := newApp(h)
	if step == nil {
		return nil
	}
	h.logger.WriteLineString(fmt.Sprintf("debug: headless at %d Hz", cfg.Hz))

	t := time.NewTicker(period)
	defer t.Stop()
	for n := uint64(1); ; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if err := step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if cfg.Ticks > 0 && n >= cfg.Ticks {
			return nil
		}
	}
}
