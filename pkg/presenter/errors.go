package presenter

import (
	"errors"
	"fmt"
)

// BoundsError is returned when an index or a range bound is out of its valid
// interval. Such arguments are never clamped silently.
type BoundsError struct {
	// What is being checked, like "row index".
	What  string
	Index int
	// The valid interval is [Low, High). A negative High means there is no
	// upper bound.
	Low, High int
}

func (e *BoundsError) Error() string {
	if e.High < 0 {
		return fmt.Sprintf("%s must be at least %d, got %d", e.What, e.Low, e.Index)
	}
	return fmt.Sprintf("%s %d out of bounds [%d, %d)", e.What, e.Index, e.Low, e.High)
}

var (
	// ErrModifyWhileRendering is returned when state is mutated from within a
	// View call, while a resolution pass is pushing changes to the View.
	ErrModifyWhileRendering = errors.New("presenter state modified while rendering")
	// ErrInfiniteLoop is returned by Flush when resolving the pending state
	// keeps producing new pending state. A selection model that changes its
	// answer, or fires a change, on every IsSelected call is the usual cause.
	ErrInfiniteLoop = errors.New("possible infinite loop while resolving presenter state")
	// ErrUnsupported is returned by call shapes that exist only for
	// interface compatibility.
	ErrUnsupported = errors.New("not supported")
)
