// Package input turns raw button levels into debounced press edges and
// merges presses relayed over the wireless link.
package input

import (
	"sync"
	"time"

	"ozean/hal"
)

type Manager struct {
	b        hal.Buttons
	debounce uint32 // microseconds

	sampled  bool
	lastRead uint32
	levels   hal.ButtonMask
	pressed  hal.ButtonMask

	mu     sync.Mutex
	queued [3]uint8 // relayed presses per button, not yet polled
}

// maxQueued bounds the relayed presses kept per button.
const maxQueued = 8

// New returns a manager sampling b at most once per debounce window. b may be
// nil on boards without buttons.
func New(b hal.Buttons, debounce time.Duration) *Manager {
	return &Manager{b: b, debounce: uint32(debounce / time.Microsecond)}
}

// Poll samples the buttons when the debounce window elapsed and latches
// released→pressed transitions. now is a wrapping microsecond counter.
func (m *Manager) Poll(now uint32) {
	if m.b != nil && (!m.sampled || now-m.lastRead >= m.debounce) {
		m.sampled = true
		m.lastRead = now
		cur := m.b.Levels()
		m.pressed |= cur &^ m.levels
		m.levels = cur
	}
	m.pressed |= m.dequeueRelay()
}

// dequeueRelay takes at most one queued press per button.
func (m *Manager) dequeueRelay() hal.ButtonMask {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out hal.ButtonMask
	for i := range m.queued {
		if m.queued[i] > 0 {
			m.queued[i]--
			out |= 1 << i
		}
	}
	return out
}

// TakePressed returns the latched presses and clears them.
func (m *Manager) TakePressed() hal.ButtonMask {
	p := m.pressed
	m.pressed = 0
	return p
}

// Held returns the last sampled levels.
func (m *Manager) Held() hal.ButtonMask { return m.levels }

// Relay queues virtual presses; safe to call from another goroutine. Each
// call yields one press per bit. A button relayed twice before a Poll is
// pressed again on the following Poll.
func (m *Manager) Relay(mask hal.ButtonMask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.queued {
		if mask&(1<<i) != 0 && m.queued[i] < maxQueued {
			m.queued[i]++
		}
	}
}

// ResetRelay drops relayed presses not yet polled (link lost).
func (m *Manager) ResetRelay() {
	m.mu.Lock()
	m.queued = [3]uint8{}
	m.mu.Unlock()
}

// DecodeRelay maps one relay write to buttons: the letters l, o and r (any
// case) or a raw mask with bit 0 Left, bit 1 Ok and bit 2 Right.
func DecodeRelay(p []byte) hal.ButtonMask {
	if len(p) == 0 {
		return 0
	}
	switch p[0] {
	case 'l', 'L':
		return hal.ButtonLeft
	case 'o', 'O':
		return hal.ButtonOk
	case 'r', 'R':
		return hal.ButtonRight
	}
	return hal.ButtonMask(p[0]) & (hal.ButtonLeft | hal.ButtonOk | hal.ButtonRight)
}
