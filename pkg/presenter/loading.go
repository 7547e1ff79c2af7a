package presenter

// LoadingState is a coarse description of how much of the current page has
// been loaded.
type LoadingState int

// Possible values of LoadingState.
const (
	// Loading means that no row of the current page is known.
	Loading LoadingState = iota
	// PartiallyLoaded means that some, but not all rows are known.
	PartiallyLoaded
	// Loaded means that all rows of the current page are known.
	Loaded
	// Empty means that the row count is known to be 0.
	Empty
)

var loadingStateNames = [...]string{"loading", "partially-loaded", "loaded", "empty"}

func (s LoadingState) String() string {
	if 0 <= s && int(s) < len(loadingStateNames) {
		return loadingStateNames[s]
	}
	return "unknown"
}

// loadingState derives the loading state from the cache fullness relative to
// the number of rows expected on the current page.
func (c *rowCache[T]) loadingState() LoadingState {
	if c.rowCountExact && c.rowCount == 0 {
		return Empty
	}
	expected := c.pageSize
	if c.rowCountExact {
		expected = c.expectedSize()
	}
	switch cached := len(c.rows); {
	case cached >= expected:
		return Loaded
	case cached == 0:
		return Loading
	default:
		return PartiallyLoaded
	}
}
