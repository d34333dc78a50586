package input

import "github.com/veandco/go-sdl2/sdl"

// KeyPressTracker reports key-down edges so a held key fires once.
type KeyPressTracker struct {
	pressed map[sdl.Scancode]bool
}

// NewKeyPressTracker creates a new KeyPressTracker
func NewKeyPressTracker() KeyPressTracker {
	return KeyPressTracker{
		pressed: make(map[sdl.Scancode]bool),
	}
}

// IsPressed checks if a key was just pressed (not held)
func (kpt *KeyPressTracker) IsPressed(keyState []uint8, scancode sdl.Scancode) bool {
	isCurrentlyPressed := keyState[scancode] != 0
	wasPressed := kpt.pressed[scancode]
	kpt.pressed[scancode] = isCurrentlyPressed
	return isCurrentlyPressed && !wasPressed
}

// MouseButtonTracker reports press and release edges of one mouse button.
// Touch input arrives as synthesized left-button events.
type MouseButtonTracker struct {
	mask uint32
	down bool
}

// NewMouseButtonTracker tracks the button selected by mask, e.g.
// sdl.ButtonLMask().
func NewMouseButtonTracker(mask uint32) MouseButtonTracker {
	return MouseButtonTracker{mask: mask}
}

// Edges compares the button state against the previous frame.
func (t *MouseButtonTracker) Edges(mouseState uint32) (pressed, released bool) {
	down := mouseState&t.mask != 0
	pressed = down && !t.down
	released = !down && t.down
	t.down = down
	return pressed, released
}
