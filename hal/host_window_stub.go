//go:build !tinygo && !cgo

package hal

import "fmt"

// RunWindow needs ebiten, which needs cgo; use -headless or -term instead.
func RunWindow(_ func(HAL) func() error, _ HostConfig) error {
	return fmt.Errorf("window mode needs a cgo build (try -term or -headless): %w", ErrNotImplemented)
}
