package relay

import (
	"testing"

	"ozean/hal"
	"ozean/reef/input"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

func TestDisconnectDropsQueuedPresses(t *testing.T) {
	m := input.New(nil, 0)
	var log lines

	m.Relay(hal.ButtonOk)
	linkChanged(m, &log, true)
	m.Poll(0)
	if got := m.TakePressed(); got != hal.ButtonOk {
		t.Fatalf("press while connected=%v, want Ok", got)
	}

	m.Relay(hal.ButtonLeft)
	m.Relay(hal.ButtonLeft)
	linkChanged(m, &log, false)
	m.Poll(1)
	if got := m.TakePressed(); got != 0 {
		t.Fatalf("presses survived disconnect: %v", got)
	}
	if len(log) != 2 || log[1] != "relay: disconnected" {
		t.Fatalf("log=%q", log)
	}
}
