// Package selection contains selection models shared by widgets and the code
// that owns the data.
//
// Models identify values by key, obtained with a KeyFunc, so that two
// instances of the same logical row compare as the same row. Change handlers
// are called synchronously, after the change has been applied.
package selection

import "sort"

// Model is the interface of a selection model.
type Model[T any] interface {
	// IsSelected reports whether v is selected.
	IsSelected(v T) bool
	// SetSelected selects or deselects v.
	SetSelected(v T, selected bool)
	// OnChange registers a function to call after the selection has changed.
	// It returns a function that removes the registration.
	OnChange(f func()) (remove func())
}

// KeyFunc maps a value to its key. Keys must be comparable with ==.
type KeyFunc[T any] func(T) any

// Identity is a KeyFunc that uses the value itself as the key. It must only
// be used with comparable values.
func Identity[T any](v T) any { return v }

type handlers struct {
	next int
	fns  map[int]func()
}

func (h *handlers) add(f func()) func() {
	if h.fns == nil {
		h.fns = make(map[int]func())
	}
	id := h.next
	h.next++
	h.fns[id] = f
	return func() { delete(h.fns, id) }
}

func (h *handlers) fire() {
	// Handlers may add or remove handlers; call a snapshot in registration
	// order.
	ids := make([]int, 0, len(h.fns))
	for id := range h.fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if f, ok := h.fns[id]; ok {
			f()
		}
	}
}
