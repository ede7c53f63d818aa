package tui

import "github.com/vovakirdan/tui-platformer/internal/core"

// Terminals report key presses and auto-repeats but never releases, so a
// key counts as held until its repeats stop arriving. The first press waits
// out the terminal's repeat delay; later repeats only need to cover the
// repeat interval.
const (
	initialHoldTicks = 30
	repeatHoldTicks  = 8
)

// opposite pairs actions that cannot be held together.
var opposite = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// HoldTracker turns a stream of key presses into per-tick held state.
type HoldTracker struct {
	remaining map[core.Action]int
	initial   int
	repeat    int
}

// NewHoldTracker creates a tracker with the default hold windows.
func NewHoldTracker() *HoldTracker {
	return NewHoldTrackerWindows(initialHoldTicks, repeatHoldTicks)
}

// NewHoldTrackerWindows creates a tracker with custom hold windows, in ticks.
func NewHoldTrackerWindows(initial, repeat int) *HoldTracker {
	return &HoldTracker{
		remaining: make(map[core.Action]int),
		initial:   max(initial, 1),
		repeat:    max(repeat, 1),
	}
}

// Press records a key press or auto-repeat for a. It reports whether this
// was a fresh press rather than a repeat.
func (h *HoldTracker) Press(a core.Action) bool {
	if o, ok := opposite[a]; ok {
		delete(h.remaining, o)
	}
	if _, held := h.remaining[a]; held {
		h.remaining[a] = max(h.remaining[a], h.repeat)
		return false
	}
	h.remaining[a] = h.initial
	return true
}

// Release drops a immediately.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.remaining, a)
}

// ReleaseAll drops every held action.
func (h *HoldTracker) ReleaseAll() {
	clear(h.remaining)
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.remaining[a]
	return ok
}

// Fill marks every held action in frame.
func (h *HoldTracker) Fill(frame *core.InputFrame) {
	for a := range h.remaining {
		frame.Hold(a)
	}
}

// Advance ages the holds by one tick and drops the expired ones.
func (h *HoldTracker) Advance() {
	for a, n := range h.remaining {
		if n <= 1 {
			delete(h.remaining, a)
			continue
		}
		h.remaining[a] = n - 1
	}
}
