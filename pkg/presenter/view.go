package presenter

import "src.cellview.dev/pkg/selection"

// Slot is an entry of the row data cache. An entry whose value has not been
// pushed by the data source yet is a placeholder with Known = false.
type Slot[T any] struct {
	Value T
	Known bool
}

// SlotOf returns a known Slot holding v.
func SlotOf[T any](v T) Slot[T] { return Slot[T]{v, true} }

// SlotsOf wraps all values in known slots.
func SlotsOf[T any](values ...T) []Slot[T] {
	slots := make([]Slot[T], len(values))
	for i, v := range values {
		slots[i] = SlotOf(v)
	}
	return slots
}

// View is the rendering collaborator of a Presenter. Its methods are only
// called during a resolution pass; calling a Presenter mutator from any of
// them fails with ErrModifyWhileRendering.
type View[T any] interface {
	// Render renders values, the first of which is at the absolute index
	// start, to markup. It should be a pure function of its arguments and of
	// the presenter's keyboard-selected row.
	Render(values []Slot[T], start int, sel selection.Model[T]) string
	// ReplaceAllChildren replaces all rows with the given markup.
	ReplaceAllChildren(values []Slot[T], markup string, stealFocus bool)
	// ReplaceChildren replaces the rows starting at the page-relative index
	// start with the given markup, which renders exactly len(values) rows.
	ReplaceChildren(values []Slot[T], start int, markup string, stealFocus bool)
	// SetKeyboardSelected updates the keyboard-selected styling of the row at
	// the page-relative index.
	SetKeyboardSelected(index int, selected, stealFocus bool)
	// SetLoadingState shows the loading state.
	SetLoadingState(state LoadingState)
	// ResetFocus restores focus on the keyboard-selected row if the view had
	// focus before its rows were replaced.
	ResetFocus()
}

// Scheduler defers a function to the end of the current turn. *sched.Loop
// implements it.
type Scheduler interface {
	Defer(f func())
}
