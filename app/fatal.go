package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"ozean/hal"
	"ozean/reef/ui"
)

const fatalLineH = 10

// panicked logs a recovered panic with its stack, shows it and returns it
// as an error.
func panicked(h hal.HAL, r any) error {
	err := fmt.Errorf("panic: %v", r)
	showFatal(h, err, debug.Stack())
	return err
}

// showFatal logs err and paints it over the whole panel, wrapped to the
// panel width. The stack goes to the log only.
func showFatal(h hal.HAL, err error, stack []byte) {
	logf(h, "error: %v", err)
	if l := h.Logger(); l != nil && len(stack) > 0 {
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString("debug: " + line)
		}
	}

	d := h.Display()
	if d == nil || d.Surface() == nil {
		return
	}
	s := d.Surface()
	w, ht := s.Width(), s.Height()
	cols := w / ui.TextWidth("M")
	if cols <= 0 {
		cols = 1
	}

	s.BeginBatch()
	defer s.EndBatch()
	s.FillRect(0, 0, w, ht, ui.ColorWhite)

	y := 2
	for _, line := range []string{"Ozean stopped:", err.Error()} {
		for len(line) > 0 {
			if y+fatalLineH > ht {
				return
			}
			chunk, rest := takeRunes(line, cols)
			ui.Text(s, 2, y, chunk, ui.ColorBlack)
			y += fatalLineH
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
