// Package app wires the aquarium session to a HAL and adapts it to the
// runners' step-function contract.
package app

import (
	"context"
	"errors"
	"fmt"

	"ozean/hal"
	"ozean/internal/buildinfo"
	"ozean/reef/config"
	"ozean/reef/relay"
	"ozean/reef/scene"
)

type Options struct {
	Session scene.Options
	// BLE advertises the wireless button relay next to the session.
	BLE bool
}

// New builds the aquarium on h and starts it in the background. The returned
// step never blocks: it reports nil while the session runs, hal.ErrQuit once
// it ended cleanly and the failure otherwise.
func New(ctx context.Context, h hal.HAL, cfg *config.Config, opts Options) func() error {
	logf(h, "%s", buildinfo.Line())
	sess, err := scene.New(h, cfg, opts.Session)
	if err != nil {
		showFatal(h, err, nil)
		return func() error { return err }
	}
	ctx, cancel := context.WithCancel(ctx)
	if opts.BLE {
		startRelay(ctx, h, sess)
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- panicked(h, r)
			}
		}()
		done <- sess.Run(ctx)
	}()

	var final error
	finished := false
	return func() error {
		if finished {
			return final
		}
		select {
		case err := <-done:
			finished = true
			cancel()
			final = outcome(err)
			return final
		default:
			return nil
		}
	}
}

// Run builds the aquarium and runs it on the calling goroutine. A failure
// stays on the error screen.
func Run(h hal.HAL, cfg *config.Config, opts Options) {
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			_ = panicked(h, r)
			select {}
		}
	}()
	logf(h, "%s", buildinfo.Line())
	sess, err := scene.New(h, cfg, opts.Session)
	if err == nil {
		if opts.BLE {
			startRelay(ctx, h, sess)
		}
		err = outcome(sess.Run(ctx))
	}
	if err != nil && !errors.Is(err, hal.ErrQuit) {
		showFatal(h, err, nil)
	}
	select {}
}

func startRelay(ctx context.Context, h hal.HAL, sess *scene.Session) {
	if err := relay.Start(ctx, sess.Input(), h.Logger()); err != nil {
		logf(h, "warn: %v; wireless buttons disabled", err)
	}
}

// outcome maps the session result onto the runner contract.
func outcome(err error) error {
	switch {
	case err == nil, errors.Is(err, scene.ErrFramesDone), errors.Is(err, context.Canceled):
		return hal.ErrQuit
	default:
		return err
	}
}

func logf(h hal.HAL, format string, args ...any) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
