//go:build tinygo

package relay

import (
	"context"

	"ozean/hal"
)

// Start is unavailable on boards without a radio.
func Start(ctx context.Context, sink Sink, log hal.Logger) error {
	return hal.ErrNotImplemented
}
