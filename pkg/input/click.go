package input

// NoTarget is the target id for "nothing under the pointer".
const NoTarget = -1

// ClickTracker turns press/release pairs into clicks. A click counts only
// when the release lands on the same target the press started on, so
// dragging off a row cancels it.
type ClickTracker struct {
	target int
	active bool
}

// Press starts a gesture on target.
func (c *ClickTracker) Press(target int) {
	c.target = target
	c.active = target != NoTarget
}

// Release ends the gesture and returns the clicked target, if any.
func (c *ClickTracker) Release(target int) (int, bool) {
	if !c.active {
		return NoTarget, false
	}
	c.active = false
	if target != c.target {
		return NoTarget, false
	}
	return target, true
}

// Held returns the target currently pressed, for pressed-state feedback.
func (c *ClickTracker) Held() (int, bool) {
	if !c.active {
		return NoTarget, false
	}
	return c.target, true
}

// Cancel drops any gesture in progress.
func (c *ClickTracker) Cancel() {
	c.active = false
}
