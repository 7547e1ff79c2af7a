package presenter

import "fmt"

// KeyboardSelectionPolicy controls whether rows can be keyboard-selected, and
// whether the keyboard-selected row is tied to the selection model.
type KeyboardSelectionPolicy int

// Possible values of KeyboardSelectionPolicy. The zero value is
// KeyboardEnabled.
const (
	KeyboardEnabled KeyboardSelectionPolicy = iota
	KeyboardDisabled
	// KeyboardBoundToSelection makes the keyboard-selected value the selected
	// value once the user has interacted with the view.
	KeyboardBoundToSelection
)

// KeyboardPagingPolicy controls what happens when keyboard selection moves
// past the edges of the visible range. The zero value is ChangePage.
type KeyboardPagingPolicy int

// Possible values of KeyboardPagingPolicy.
const (
	ChangePage KeyboardPagingPolicy = iota
	CurrentPage
	IncreaseRange
)

// LimitedToRange reports whether keyboard selection stays within the visible
// range.
func (p KeyboardPagingPolicy) LimitedToRange() bool { return p == CurrentPage }

var (
	selectionPolicyNames = [...]string{"enabled", "disabled", "bound-to-selection"}
	pagingPolicyNames    = [...]string{"change-page", "current-page", "increase-range"}
)

func (p KeyboardSelectionPolicy) String() string {
	return policyName(selectionPolicyNames[:], int(p))
}

func (p KeyboardPagingPolicy) String() string {
	return policyName(pagingPolicyNames[:], int(p))
}

func policyName(names []string, i int) string {
	if 0 <= i && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("policy(%d)", i)
}

// ParseKeyboardSelectionPolicy parses the name of a KeyboardSelectionPolicy,
// as returned by its String method.
func ParseKeyboardSelectionPolicy(s string) (KeyboardSelectionPolicy, error) {
	i, err := parsePolicy(selectionPolicyNames[:], "keyboard selection policy", s)
	return KeyboardSelectionPolicy(i), err
}

// ParseKeyboardPagingPolicy parses the name of a KeyboardPagingPolicy, as
// returned by its String method.
func ParseKeyboardPagingPolicy(s string) (KeyboardPagingPolicy, error) {
	i, err := parsePolicy(pagingPolicyNames[:], "keyboard paging policy", s)
	return KeyboardPagingPolicy(i), err
}

func parsePolicy(names []string, what, s string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q, should be one of %v", what, s, names)
}
