package ui

// EditTracker turns per-frame slider observations into committed edits.
// Values may change many times while a slider is dragged; the edit is
// committed once, when the mouse button is released.
type EditTracker struct {
	pending bool
	changes int
}

// Observe records one frame. changed reports whether any panel value changed
// this frame, released whether the mouse button went up this frame.
// It returns true when the accumulated edit should be committed.
func (t *EditTracker) Observe(changed, released bool) bool {
	if changed {
		t.pending = true
		t.changes++
	}
	if released && t.pending {
		t.pending = false
		t.changes = 0
		return true
	}
	return false
}

// Pending reports whether changes are waiting for a commit.
func (t *EditTracker) Pending() bool {
	return t.pending
}

// Changes returns the number of frames with changes in the pending edit.
func (t *EditTracker) Changes() int {
	return t.changes
}

// Cancel drops the pending edit.
func (t *EditTracker) Cancel() {
	t.pending = false
	t.changes = 0
}
