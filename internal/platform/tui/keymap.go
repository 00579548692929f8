package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mraof/gbjam5/internal/core"
)

// DefaultHold is how long a button stays down after its last key event.
// Terminals send presses and auto-repeats but no releases.
const DefaultHold = 120 * time.Millisecond

// opposite pairs cancel each other: the most recent press wins.
var opposite = map[core.Button]core.Button{
	core.ButtonLeft:  core.ButtonRight,
	core.ButtonRight: core.ButtonLeft,
	core.ButtonUp:    core.ButtonDown,
	core.ButtonDown:  core.ButtonUp,
}

// ButtonFor maps a key name to a handheld button.
func ButtonFor(key string) (core.Button, bool) {
	switch key {
	case "left", "a":
		return core.ButtonLeft, true
	case "right", "d":
		return core.ButtonRight, true
	case "up", "w":
		return core.ButtonUp, true
	case "down", "s":
		return core.ButtonDown, true
	case "x", "k", " ":
		return core.ButtonA, true
	case "z", "j":
		return core.ButtonB, true
	case "enter":
		return core.ButtonStart, true
	}
	return core.ButtonNone, false
}

// IsQuit reports whether the key leaves the program.
func IsQuit(key string) bool {
	return key == "ctrl+c" || key == "q"
}

// KeyMapper turns key events into held buttons using a hold window.
type KeyMapper struct {
	hold    time.Duration
	pressed map[core.Button]time.Time
}

// NewKeyMapper creates a mapper. A non-positive hold uses DefaultHold.
func NewKeyMapper(hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyMapper{hold: hold, pressed: make(map[core.Button]time.Time)}
}

// Press records a key event at now. It returns true for quit keys.
func (k *KeyMapper) Press(msg tea.KeyMsg, now time.Time) bool {
	name := msg.String()
	if IsQuit(name) {
		return true
	}
	b, ok := ButtonFor(name)
	if !ok {
		return false
	}
	k.pressed[b] = now
	if o, ok := opposite[b]; ok {
		delete(k.pressed, o)
	}
	return false
}

// Frame returns the buttons held at now and forgets expired presses.
func (k *KeyMapper) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for b, at := range k.pressed {
		if now.Sub(at) > k.hold {
			delete(k.pressed, b)
			continue
		}
		f.Set(b)
	}
	return f
}

// Release forgets every press.
func (k *KeyMapper) Release() {
	clear(k.pressed)
}
