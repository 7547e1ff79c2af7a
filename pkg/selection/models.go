package selection

// Single is a Model where at most one value is selected.
type Single[T any] struct {
	keys KeyFunc[T]
	// If true, selecting the selected value again deselects it.
	toggle bool

	selected    T
	hasSelected bool
	handlers
}

// NewSingle creates a Single model. If keys is nil, Identity is used.
func NewSingle[T any](keys KeyFunc[T]) *Single[T] {
	if keys == nil {
		keys = Identity[T]
	}
	return &Single[T]{keys: keys}
}

// SetToggle sets whether selecting the currently selected value deselects
// it.
func (m *Single[T]) SetToggle(toggle bool) { m.toggle = toggle }

func (m *Single[T]) IsSelected(v T) bool {
	return m.hasSelected && m.keys(m.selected) == m.keys(v)
}

func (m *Single[T]) SetSelected(v T, selected bool) {
	isSelected := m.IsSelected(v)
	switch {
	case selected && isSelected && m.toggle:
		m.clear()
	case selected && !isSelected:
		m.selected, m.hasSelected = v, true
	case !selected && isSelected:
		m.clear()
	default:
		return
	}
	m.fire()
}

// Selected returns the selected value, if any.
func (m *Single[T]) Selected() (T, bool) { return m.selected, m.hasSelected }

// Clear deselects the selected value, if any.
func (m *Single[T]) Clear() {
	if m.hasSelected {
		m.clear()
		m.fire()
	}
}

func (m *Single[T]) clear() {
	var zero T
	m.selected, m.hasSelected = zero, false
}

func (m *Single[T]) OnChange(f func()) func() { return m.add(f) }

// Multi is a Model where any number of values can be selected.
type Multi[T any] struct {
	keys     KeyFunc[T]
	selected map[any]T
	// Keys in the order they were selected.
	order []any
	handlers
}

// NewMulti creates a Multi model. If keys is nil, Identity is used.
func NewMulti[T any](keys KeyFunc[T]) *Multi[T] {
	if keys == nil {
		keys = Identity[T]
	}
	return &Multi[T]{keys: keys, selected: make(map[any]T)}
}

func (m *Multi[T]) IsSelected(v T) bool {
	_, ok := m.selected[m.keys(v)]
	return ok
}

func (m *Multi[T]) SetSelected(v T, selected bool) {
	key := m.keys(v)
	_, isSelected := m.selected[key]
	switch {
	case selected && !isSelected:
		m.selected[key] = v
		m.order = append(m.order, key)
	case !selected && isSelected:
		delete(m.selected, key)
		for i, k := range m.order {
			if k == key {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	default:
		return
	}
	m.fire()
}

// SelectedValues returns the selected values in the order they were
// selected.
func (m *Multi[T]) SelectedValues() []T {
	values := make([]T, len(m.order))
	for i, key := range m.order {
		values[i] = m.selected[key]
	}
	return values
}

// Clear deselects all values.
func (m *Multi[T]) Clear() {
	if len(m.selected) == 0 {
		return
	}
	m.selected = make(map[any]T)
	m.order = nil
	m.fire()
}

func (m *Multi[T]) OnChange(f func()) func() { return m.add(f) }

// None is a Model that never reports a value as selected. It remembers the
// last value passed to SetSelected with selected = true, which is useful for
// reacting to activation without highlighting.
type None[T any] struct {
	last    T
	hasLast bool
	handlers
}

// NewNone creates a None model.
func NewNone[T any]() *None[T] { return &None[T]{} }

func (m *None[T]) IsSelected(T) bool { return false }

func (m *None[T]) SetSelected(v T, selected bool) {
	if !selected {
		return
	}
	m.last, m.hasLast = v, true
	m.fire()
}

// LastSelected returns the value last passed to SetSelected with selected =
// true.
func (m *None[T]) LastSelected() (T, bool) { return m.last, m.hasLast }

func (m *None[T]) OnChange(f func()) func() { return m.add(f) }
