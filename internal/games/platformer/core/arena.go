package core

// Handle identifies a slot in an Arena. Slots are never reused, so a handle
// captured by a deferred effect can only ever refer to the value it was
// created for.
type Handle int

// NoHandle is the zero-value sentinel for "no slot".
const NoHandle Handle = -1

// Arena is an append-only collection with stable indices and per-slot alive
// flags. Removal marks a slot dead instead of compacting, and iteration
// skips dead slots. Pointers obtained from Get or Each stay valid until the
// next Add to the same arena.
type Arena[T any] struct {
	items []T
	alive []bool
	live  int
}

// Add appends a value and returns its handle.
func (a *Arena[T]) Add(v T) Handle {
	a.items = append(a.items, v)
	a.alive = append(a.alive, true)
	a.live++
	return Handle(len(a.items) - 1)
}

// Remove marks the slot dead. Removing an unknown or already removed
// handle is a no-op. It reports whether a live value was removed.
func (a *Arena[T]) Remove(h Handle) bool {
	if !a.Alive(h) {
		return false
	}
	a.alive[h] = false
	a.live--
	return true
}

// Alive reports whether h refers to a live slot.
func (a *Arena[T]) Alive(h Handle) bool {
	return h >= 0 && int(h) < len(a.items) && a.alive[h]
}

// Get returns a pointer to a live value.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if !a.Alive(h) {
		return nil, false
	}
	return &a.items[h], true
}

// Each calls fn for every live value in insertion order. Values added by
// fn are not visited in the same pass; values removed by fn are skipped
// if not yet visited.
func (a *Arena[T]) Each(fn func(h Handle, v *T)) {
	n := len(a.items)
	for i := 0; i < n; i++ {
		if a.alive[i] {
			fn(Handle(i), &a.items[i])
		}
	}
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Slots returns the total number of slots, live or dead.
func (a *Arena[T]) Slots() int {
	return len(a.items)
}
