//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"ozean/app"
	"ozean/hal"
	"ozean/reef/config"
)

func main() {
	var (
		configPath string
		headless   hal.HeadlessConfig
		term       bool
		opts       app.Options
		host       hal.HostConfig
	)
	flag.StringVar(&configPath, "config", "", "TOML or YAML tuning file (defaults when empty).")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Step rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N steps in headless mode (0 = run forever).")
	flag.BoolVar(&term, "term", false, "Mirror the panel into the terminal.")
	flag.Uint64Var(&opts.Session.Frames, "frames", 0, "Stop after N rendered frames (0 = run forever).")
	flag.BoolVar(&opts.Session.Autostart, "autostart", false, "Skip the start screen with a new pet.")
	flag.Int64Var(&opts.Session.Seed, "seed", 1, "Random seed for the scene.")
	flag.BoolVar(&opts.BLE, "ble", false, "Advertise the wireless button relay.")
	flag.StringVar(&host.FlashPath, "flash", "", "Backing file for the emulated flash.")
	flag.StringVar(&host.LogPath, "log", "", "Write the log to this file instead of stderr.")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	host.LogLevel, host.LogFormat = cfg.Logging.Level, cfg.Logging.Format

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	newApp := func(h hal.HAL) func() error { return app.New(ctx, h, cfg, opts) }

	switch {
	case headless.Enabled:
		headless.Host = host
		err = hal.RunHeadless(ctx, newApp, headless)
	case term:
		err = hal.RunTerminal(ctx, newApp, host)
	default:
		err = hal.RunWindow(newApp, host)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
