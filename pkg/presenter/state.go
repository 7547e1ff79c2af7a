package presenter

// state is everything a resolution pass reads and commits.
type state[T any] struct {
	rowCache[T]
	// Page-relative index of the keyboard-selected row.
	kbRow int
	// Value of the keyboard-selected row when it was last resolved. Used to
	// find the row again after the data changes.
	kbValue Slot[T]
	// Selected value bound to keyboard selection under
	// KeyboardBoundToSelection.
	selectedValue Slot[T]
	selected      selectedRows
	// Whether the user has interacted with the view.
	viewTouched bool
}

func (s *state[T]) clone() state[T] {
	return state[T]{
		rowCache:      s.rowCache.clone(),
		kbRow:         s.kbRow,
		kbValue:       s.kbValue,
		selectedValue: s.selectedValue,
		selected:      s.selected.clone(),
		viewTouched:   s.viewTouched,
	}
}

// pendingState is a mutable copy of the committed state, plus the
// bookkeeping needed to push the changes to the view.
type pendingState[T any] struct {
	state[T]
	kbRowChanged   bool
	kbStealFocus   bool
	redrawRequired bool
	// Absolute ranges of rows whose data was replaced.
	replaced []Range
}

func newPendingState[T any](committed *state[T]) *pendingState[T] {
	return &pendingState[T]{state: committed.clone()}
}
