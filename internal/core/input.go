package core

// Button represents one of the seven handheld buttons, abstracted from
// physical key presses.
type Button int

const (
	ButtonNone  Button = iota
	ButtonLeft         // Left arrow, A key
	ButtonRight        // Right arrow, D key
	ButtonUp           // Up arrow, W key
	ButtonDown         // Down arrow, S key
	ButtonA            // X, K - jump
	ButtonB            // Z, J - interact
	ButtonStart        // Enter - edge significant
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "None"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonStart:
		return "Start"
	default:
		return "Unknown"
	}
}

// InputFrame is the pressed state of every button during one simulation tick.
type InputFrame struct {
	// Buttons maps buttons to whether they are held this tick.
	Buttons map[Button]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Buttons: make(map[Button]bool),
	}
}

// Set marks a button as held.
func (f *InputFrame) Set(b Button) {
	if f.Buttons == nil {
		f.Buttons = make(map[Button]bool)
	}
	f.Buttons[b] = true
}

// Release marks a button as not held.
func (f *InputFrame) Release(b Button) {
	delete(f.Buttons, b)
}

// Has returns true if the given button is held.
func (f InputFrame) Has(b Button) bool {
	if f.Buttons == nil {
		return false
	}
	return f.Buttons[b]
}

// Clear releases all buttons.
func (f *InputFrame) Clear() {
	for k := range f.Buttons {
		delete(f.Buttons, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Buttons {
		clone.Buttons[k] = v
	}
	return clone
}

// Press builds a frame with the given buttons held. Handy in tests and replays.
func Press(buttons ...Button) InputFrame {
	f := NewInputFrame()
	for _, b := range buttons {
		f.Set(b)
	}
	return f
}
