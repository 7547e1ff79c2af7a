package datasource

import (
	"src.cellview.dev/pkg/presenter"
)

// ListProvider serves an in-memory list to any number of displays. Changes to
// the list are pushed to all displays.
type ListProvider[T any] struct {
	values   []T
	displays map[Display[T]]func()
	// Called with errors returned by displays. Defaults to logging them.
	OnError func(error)
}

// NewListProvider creates a ListProvider serving a copy of values.
func NewListProvider[T any](values []T) *ListProvider[T] {
	return &ListProvider[T]{
		values:   append([]T(nil), values...),
		displays: make(map[Display[T]]func()),
	}
}

// AddDisplay registers a display and pushes its visible range to it.
func (lp *ListProvider[T]) AddDisplay(d Display[T]) {
	if _, ok := lp.displays[d]; ok {
		return
	}
	lp.displays[d] = d.OnRangeChange(func(presenter.Range) { lp.push(d) })
	lp.push(d)
}

// RemoveDisplay unregisters a display.
func (lp *ListProvider[T]) RemoveDisplay(d Display[T]) {
	if remove, ok := lp.displays[d]; ok {
		remove()
		delete(lp.displays, d)
	}
}

// Len returns the length of the list.
func (lp *ListProvider[T]) Len() int { return len(lp.values) }

// List returns a copy of the list.
func (lp *ListProvider[T]) List() []T { return append([]T(nil), lp.values...) }

// SetList replaces the list.
func (lp *ListProvider[T]) SetList(values []T) {
	lp.values = append([]T(nil), values...)
	lp.Refresh()
}

// Append adds values to the end of the list.
func (lp *ListProvider[T]) Append(values ...T) {
	lp.values = append(lp.values, values...)
	lp.Refresh()
}

// Replace replaces the value at index i.
func (lp *ListProvider[T]) Replace(i int, v T) error {
	if i < 0 || i >= len(lp.values) {
		return &presenter.BoundsError{What: "list index", Index: i, Low: 0, High: len(lp.values)}
	}
	lp.values[i] = v
	lp.Refresh()
	return nil
}

// Refresh pushes the visible range of every display.
func (lp *ListProvider[T]) Refresh() {
	for d := range lp.displays {
		lp.push(d)
	}
}

func (lp *ListProvider[T]) push(d Display[T]) {
	if err := Push(d, Slice(lp.values, d.VisibleRange())); err != nil {
		lp.error(err)
	}
}

func (lp *ListProvider[T]) error(err error) {
	if lp.OnError != nil {
		lp.OnError(err)
		return
	}
	logger.Println("pushing rows:", err)
}
