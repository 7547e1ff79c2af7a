package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type row struct {
	ID   int
	Name string
}

func rowKey(r row) any { return r.ID }

func TestSingle(t *testing.T) {
	m := NewSingle(rowKey)
	changes := 0
	remove := m.OnChange(func() { changes++ })

	a, a2, b := row{1, "a"}, row{1, "a (renamed)"}, row{2, "b"}
	m.SetSelected(a, true)
	if !m.IsSelected(a) || !m.IsSelected(a2) {
		t.Errorf("value with same key not selected")
	}
	m.SetSelected(a2, true)
	if changes != 1 {
		t.Errorf("selecting an already selected key fired a change")
	}
	m.SetSelected(b, true)
	if m.IsSelected(a) || !m.IsSelected(b) {
		t.Errorf("Single kept more than one selected value")
	}
	m.SetSelected(a, false)
	if changes != 2 {
		t.Errorf("deselecting an unselected value fired a change")
	}
	if v, ok := m.Selected(); !ok || v != b {
		t.Errorf("Selected() -> %v, %v, want %v, true", v, ok, b)
	}
	remove()
	m.Clear()
	if changes != 2 {
		t.Errorf("removed handler still called")
	}
	if _, ok := m.Selected(); ok {
		t.Errorf("Selected() reports a value after Clear")
	}
}

func TestSingle_Toggle(t *testing.T) {
	m := NewSingle[string](nil)
	m.SetToggle(true)
	m.SetSelected("x", true)
	m.SetSelected("x", true)
	if m.IsSelected("x") {
		t.Errorf("reselecting with toggle did not deselect")
	}
}

func TestMulti(t *testing.T) {
	m := NewMulti(rowKey)
	changes := 0
	m.OnChange(func() { changes++ })

	for _, r := range []row{{3, "c"}, {1, "a"}, {2, "b"}} {
		m.SetSelected(r, true)
	}
	m.SetSelected(row{1, "a"}, true)
	m.SetSelected(row{2, "b"}, false)
	if changes != 4 {
		t.Errorf("got %d changes, want 4", changes)
	}
	want := []row{{3, "c"}, {1, "a"}}
	if diff := cmp.Diff(want, m.SelectedValues()); diff != "" {
		t.Errorf("SelectedValues (-want +got):\n%s", diff)
	}
	m.Clear()
	if m.IsSelected(row{3, "c"}) || changes != 5 {
		t.Errorf("Clear did not deselect everything exactly once")
	}
	m.Clear()
	if changes != 5 {
		t.Errorf("Clear on empty selection fired a change")
	}
}

func TestNone(t *testing.T) {
	m := NewNone[int]()
	fired := false
	m.OnChange(func() { fired = true })
	m.SetSelected(5, true)
	if m.IsSelected(5) {
		t.Errorf("None reports a selected value")
	}
	if v, ok := m.LastSelected(); !ok || v != 5 || !fired {
		t.Errorf("LastSelected() -> %v, %v (fired %v)", v, ok, fired)
	}
}
