package presenter

import "fmt"

// Range is the half-open window [Start, Start+Length) into a dataset. It is a
// value type; changing the window means constructing a new Range.
type Range struct {
	Start  int
	Length int
}

// NewRange returns a Range after checking that neither start nor length is
// negative.
func NewRange(start, length int) (Range, error) {
	if err := checkRange(start, length); err != nil {
		return Range{}, err
	}
	return Range{start, length}, nil
}

func checkRange(start, length int) error {
	if start < 0 {
		return &BoundsError{What: "range start", Index: start, Low: 0, High: -1}
	}
	if length < 0 {
		return &BoundsError{What: "range length", Index: length, Low: 0, High: -1}
	}
	return nil
}

// End returns the exclusive end of the range.
func (r Range) End() int { return r.Start + r.Length }

// Contains reports whether i is in the range.
func (r Range) Contains(i int) bool { return r.Start <= i && i < r.End() }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End()) }
