//go:build !tinygo

// Command reefsave inspects and edits the pet save inside an emulated flash
// image, the same file the host build uses for its flash.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"ozean/hal"
	"ozean/reef/config"
	"ozean/reef/store"
	"ozean/reef/ui"
)

// wallClock feeds the store's rate limiter from the host clock.
type wallClock struct{ start time.Time }

func (c wallClock) Micros() uint32 { return uint32(time.Since(c.start) / time.Microsecond) }

type writeOpts struct {
	full store.Full
}

func main() {
	var (
		flashPath  string
		configPath string
		flashSize  uint
		eraseSize  uint
		w          writeOpts
		hunger     int
		fun        int
		energy     int
		hp         int
		age        time.Duration
	)
	flag.StringVar(&flashPath, "flash", hal.HostFlashDefaultPath, "Flash image path.")
	flag.StringVar(&configPath, "config", "", "Tuning file with the save area (defaults when empty).")
	flag.UintVar(&flashSize, "size", hal.HostFlashDefaultSize, "Size of a new flash image (bytes).")
	flag.UintVar(&eraseSize, "erase", hal.HostFlashEraseBlock, "Erase block size (bytes).")
	flag.IntVar(&hunger, "hunger", 30, "write: hunger 0..100.")
	flag.IntVar(&fun, "fun", 70, "write: fun 0..100.")
	flag.IntVar(&energy, "energy", 80, "write: energy 0..100.")
	flag.IntVar(&hp, "hp", 20, "write: health points.")
	flag.DurationVar(&age, "age", 0, "write: pet age.")
	flag.BoolVar(&w.full.Dead, "dead", false, "write: mark the pet dead.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: reefsave [flags] show|write|clear\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		flag.Usage()
		os.Exit(2)
	}
	w.full.Hunger, w.full.Fun, w.full.Energy, w.full.HP = int16(hunger), int16(fun), int16(energy), int16(hp)
	w.full.AgeSec = uint32(age / time.Second)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if err := run(os.Stdout, cmd, flashPath, uint32(flashSize), uint32(eraseSize), cfg.Save, w); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, cmd, path string, size, erase uint32, cfg config.SaveConfig, w writeOpts) error {
	ff, err := hal.OpenFileFlash(path, size, erase)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	st, err := store.New(ff, wallClock{start: time.Now()}, cfg, nil)
	if err != nil {
		return err
	}

	switch cmd {
	case "show":
		return show(out, st, ff)
	case "clear":
		if err := st.ClearSave(); err != nil {
			return err
		}
		fmt.Fprintln(out, "save cleared")
		return nil
	case "write":
		if _, err := st.SaveFullIfDue(w.full, true); err != nil {
			return err
		}
		l := store.Legacy{Hunger: w.full.Hunger, Fun: w.full.Fun, Energy: w.full.Energy}
		if _, err := st.SaveStatsIfDue(l, true); err != nil {
			return err
		}
		fmt.Fprintln(out, "save written")
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func show(out io.Writer, st *store.Store, ff *hal.FileFlash) error {
	labels := ui.NewLabels("en")
	fmt.Fprintf(out, "flash: %s, erase block %s\n",
		humanize.IBytes(uint64(ff.SizeBytes())), humanize.IBytes(uint64(ff.EraseBlockBytes())))

	f, err := st.LoadFull()
	switch {
	case errors.Is(err, store.ErrCorrupt):
		fmt.Fprintln(out, "full: corrupt")
	case errors.Is(err, store.ErrNoSave):
		fmt.Fprintln(out, "full: none")
	case err != nil:
		fmt.Fprintf(out, "full: %v\n", err)
	default:
		fmt.Fprintf(out, "full: hunger %d fun %d energy %d hp %d age %s dead %v\n",
			f.Hunger, f.Fun, f.Energy, f.HP, labels.Age(time.Duration(f.AgeSec)*time.Second), f.Dead)
	}

	l, err := st.LoadStats()
	switch {
	case errors.Is(err, store.ErrNoSave):
		fmt.Fprintln(out, "legacy: none")
	case err != nil:
		fmt.Fprintf(out, "legacy: %v\n", err)
	default:
		fmt.Fprintf(out, "legacy: hunger %d fun %d energy %d\n", l.Hunger, l.Fun, l.Energy)
	}
	return nil
}
