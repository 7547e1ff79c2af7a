package presenter

import "sort"

// selectedRows is the set of absolute row indices known to be selected, as
// of the last resolution pass.
type selectedRows map[int]struct{}

func (s selectedRows) clone() selectedRows {
	c := make(selectedRows, len(s))
	for i := range s {
		c[i] = struct{}{}
	}
	return c
}

func (s selectedRows) sorted() []int {
	indices := make([]int, 0, len(s))
	for i := range s {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices
}

// removeRange forgets the rows in r.
func (s selectedRows) removeRange(r Range) {
	for i := r.Start; i < r.End(); i++ {
		delete(s, i)
	}
}

// reconcile recomputes the selected rows of the page from isSelected, and
// returns the new set with the absolute indices whose selection differs from
// old. Placeholders count as not selected. A nil isSelected means there is no
// selection model.
func reconcile[T any](old selectedRows, rows []Slot[T], pageStart int, isSelected func(T) bool) (selectedRows, []int) {
	now := make(selectedRows)
	var changed []int
	for i, row := range rows {
		abs := pageStart + i
		selected := isSelected != nil && row.Known && isSelected(row.Value)
		_, was := old[abs]
		if selected {
			now[abs] = struct{}{}
		}
		if selected != was {
			changed = append(changed, abs)
		}
	}
	return now, changed
}
