package presenter

import (
	"fmt"
	"sort"
)

// Strategy is how a resolution pass updated the view.
type Strategy int

// Possible values of Strategy.
const (
	// NoOp means that the view was not touched.
	NoOp Strategy = iota
	// StyleOnly means that only the keyboard-selected styling of the old and
	// new keyboard-selected rows was updated.
	StyleOnly
	// Patch means that the modified ranges were re-rendered.
	Patch
	// Redraw means that all rows were re-rendered.
	Redraw
)

var strategyNames = [...]string{"no-op", "style-only", "patch", "redraw"}

func (s Strategy) String() string {
	if 0 <= s && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// Resolution describes what a resolution pass pushed to the view.
type Resolution struct {
	Strategy Strategy
	// Absolute ranges of modified rows. Under Patch, these are the ranges
	// that were re-rendered.
	Ranges []Range
	// Whether a redraw rendered the same markup as the previous redraw, and
	// the view was therefore not written.
	MarkupSkipped bool
}

func (r Resolution) String() string {
	s := fmt.Sprintf("%v %v", r.Strategy, r.Ranges)
	if r.MarkupSkipped {
		s += " (markup unchanged)"
	}
	return s
}

// ensurePending returns the pending state, creating it from the committed
// state if needed, and schedules a resolution pass.
func (p *Presenter[T]) ensurePending() (*pendingState[T], error) {
	if p.rendering {
		p.renderErr = ErrModifyWhileRendering
		return nil, ErrModifyWhileRendering
	}
	if p.pending == nil {
		p.pending = newPendingState(&p.state)
	}
	p.mutations++
	p.scheduleFlush()
	return p.pending, nil
}

// scheduleFlush arms a resolution pass at the end of the turn. Only the most
// recently armed pass runs; earlier ones find themselves stale.
func (p *Presenter[T]) scheduleFlush() {
	if p.cfg.Scheduler == nil {
		return
	}
	p.armedFlush++
	seq := p.armedFlush
	p.cfg.Scheduler.Defer(func() {
		if seq != p.armedFlush || p.resolving {
			return
		}
		if err := p.Flush(); err != nil {
			p.cfg.OnError(err)
		}
	})
}

// Flush resolves the pending state, if any, and pushes the changes to the
// view. Resolution passes are repeated while they produce new pending state,
// up to the configured limit. Calling Flush from within a resolution pass
// does nothing.
func (p *Presenter[T]) Flush() error {
	if p.resolving {
		return nil
	}
	for loops := 0; p.pending != nil; loops++ {
		if loops >= p.cfg.MaxResolveLoops {
			return fmt.Errorf("%w: state still pending after %d passes", ErrInfiniteLoop, loops)
		}
		if err := p.resolvePendingState(); err != nil {
			return err
		}
	}
	return nil
}

// resolvePendingState runs one resolution pass. If the selection model
// mutates the pending state while it is consulted, the pass is abandoned
// and the pending state is kept for the next pass.
func (p *Presenter[T]) resolvePendingState() error {
	p.armedFlush++
	p.resolving = true
	defer func() { p.resolving = false }()

	pending := p.pending
	old := &p.state
	mutations := p.mutations

	p.resolveKeyboard(pending)
	p.bindKeyboardToSelection(old, pending)
	if p.mutations != mutations {
		logger.Println("selection model changed the state while binding keyboard selection, retrying")
		return nil
	}

	var isSelected func(T) bool
	if p.selModel != nil {
		isSelected = p.selModel.IsSelected
	}
	selected, modified := reconcile(old.selected, pending.rows, pending.pageStart, isSelected)
	if p.mutations != mutations {
		logger.Println("selection model changed the state while reconciling selection, retrying")
		return nil
	}
	pending.selected = selected

	replacedEmpty := false
	for _, r := range pending.replaced {
		if r.Length == 0 {
			replacedEmpty = true
		}
		for i := r.Start; i < r.End(); i++ {
			modified = append(modified, i)
		}
	}
	kbChanged := pending.kbRowChanged || pending.kbRow != old.kbRow
	if len(modified) > 0 && kbChanged {
		modified = append(modified, old.pageStart+old.kbRow, pending.pageStart+pending.kbRow)
	}

	pageStart := pending.pageStart
	ranges := calculateModifiedRanges(modified, pageStart, pageStart+len(pending.rows))
	replaceDiff := 0
	for _, r := range ranges {
		replaceDiff += r.Length
	}
	oldRowDataCount := len(old.rows)
	redraw := pending.redrawRequired ||
		pageStart != old.pageStart ||
		len(pending.rows) < oldRowDataCount ||
		(len(ranges) == 1 && ranges[0].Start == pageStart &&
			(replaceDiff >= oldRowDataCount || replaceDiff >= old.pageSize)) ||
		(replaceDiff >= p.cfg.RedrawMinimum &&
			float64(replaceDiff) > p.cfg.RedrawThreshold*float64(oldRowDataCount)) ||
		(replacedEmpty && oldRowDataCount == 0)

	res := Resolution{Ranges: ranges}
	p.renderErr = nil
	p.rendering = true
	p.loadingState = pending.loadingState()
	p.view.SetLoadingState(p.loadingState)
	switch {
	case redraw:
		res.Strategy = Redraw
		rows := append([]Slot[T](nil), pending.rows...)
		markup := p.view.Render(rows, pageStart, p.selModel)
		if p.hasLastMarkup && markup == p.lastMarkup {
			res.MarkupSkipped = true
		} else {
			p.view.ReplaceAllChildren(rows, markup, pending.kbStealFocus)
			p.lastMarkup, p.hasLastMarkup = markup, true
			p.view.ResetFocus()
		}
	case len(ranges) > 0:
		res.Strategy = Patch
		for _, r := range ranges {
			rel := r.Start - pageStart
			rows := append([]Slot[T](nil), pending.rows[rel:rel+r.Length]...)
			markup := p.view.Render(rows, r.Start, p.selModel)
			p.view.ReplaceChildren(rows, rel, markup, pending.kbStealFocus)
		}
		p.lastMarkup, p.hasLastMarkup = "", false
		p.view.ResetFocus()
	case kbChanged:
		res.Strategy = StyleOnly
		if old.kbRow < len(pending.rows) {
			p.view.SetKeyboardSelected(old.kbRow, false, false)
		}
		if pending.kbRow < len(pending.rows) && p.kbSelectionPolicy != KeyboardDisabled {
			p.view.SetKeyboardSelected(pending.kbRow, true, pending.kbStealFocus)
		}
	}
	p.rendering = false

	p.state = pending.state
	p.pending = nil
	p.lastResolution = res
	logger.Printf("resolved range %v with %d rows: %v", p.state.visibleRange(), len(p.state.rows), res)
	if err := p.renderErr; err != nil {
		p.renderErr = nil
		return err
	}
	return nil
}

// resolveKeyboard clamps the keyboard-selected row to the row data, and
// finds the keyboard-selected value again if the data has changed.
func (p *Presenter[T]) resolveKeyboard(pending *pendingState[T]) {
	n := len(pending.rows)
	pending.kbRow = max(0, min(pending.kbRow, n-1))
	switch {
	case p.kbSelectionPolicy == KeyboardDisabled:
		pending.kbRow = 0
		pending.kbValue = Slot[T]{}
	case pending.kbRowChanged:
		pending.kbValue = pending.slot(pending.kbRow)
	case pending.kbValue.Known:
		best := p.findIndexOfBestMatch(pending, pending.kbValue.Value, pending.kbRow)
		if best >= 0 {
			pending.kbRow = best
			pending.kbValue = pending.rows[best]
		} else {
			pending.kbRow = 0
			pending.kbValue = Slot[T]{}
		}
	}
}

// findIndexOfBestMatch returns the page-relative index of the row whose key
// is the key of value, preferring the one closest to around, or -1.
func (p *Presenter[T]) findIndexOfBestMatch(pending *pendingState[T], value T, around int) int {
	key := p.cfg.Keys(value)
	best, bestDistance := -1, len(pending.rows)
	for i, row := range pending.rows {
		if !row.Known || p.cfg.Keys(row.Value) != key {
			continue
		}
		d := i - around
		if d < 0 {
			d = -d
		}
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}

// bindKeyboardToSelection makes the keyboard-selected value the selected
// value, deselecting the previously bound one.
func (p *Presenter[T]) bindKeyboardToSelection(old *state[T], pending *pendingState[T]) {
	sel := p.selModel
	if p.kbSelectionPolicy != KeyboardBoundToSelection || sel == nil || !pending.viewTouched {
		return
	}
	newValue := pending.slot(pending.kbRow)
	if !newValue.Known {
		return
	}
	oldValue := old.selectedValue
	if oldValue.Known && p.cfg.Keys(oldValue.Value) == p.cfg.Keys(newValue.Value) {
		return
	}
	oldSelected := oldValue.Known && sel.IsSelected(oldValue.Value)
	newSelected := sel.IsSelected(newValue.Value)
	if oldSelected {
		sel.SetSelected(oldValue.Value, false)
	}
	pending.selectedValue = newValue
	if !newSelected {
		sel.SetSelected(newValue.Value, true)
	}
}

// calculateModifiedRanges groups the absolute row indices in modified that
// are within [start, end) into at most two ranges, so that the gap between
// the two ranges is the largest gap between consecutive indices.
func calculateModifiedRanges(modified []int, start, end int) []Range {
	indices := make([]int, 0, len(modified))
	for _, i := range modified {
		if start <= i && i < end {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		return nil
	}
	sort.Ints(indices)
	indices = dedup(indices)

	rangeStart0, rangeEnd0 := -1, -1
	rangeStart1, rangeEnd1 := -1, -1
	maxDiff := 0
	for _, i := range indices {
		if rangeStart0 == -1 {
			rangeStart0, rangeEnd0 = i, i
		} else if rangeStart1 == -1 {
			maxDiff = i - rangeEnd0
			rangeStart1, rangeEnd1 = i, i
		} else if diff := i - rangeEnd1; diff > maxDiff {
			rangeEnd0 = rangeEnd1
			rangeStart1, rangeEnd1 = i, i
			maxDiff = diff
		} else {
			rangeEnd1 = i
		}
	}

	// The end indices are inclusive so far.
	rangeEnd0++
	rangeEnd1++
	if rangeStart1 != -1 && rangeStart1 <= rangeEnd0 {
		// The ranges are contiguous.
		rangeEnd0 = rangeEnd1
		rangeStart1 = -1
	}
	ranges := []Range{{rangeStart0, rangeEnd0 - rangeStart0}}
	if rangeStart1 != -1 {
		ranges = append(ranges, Range{rangeStart1, rangeEnd1 - rangeStart1})
	}
	return ranges
}

func dedup(sorted []int) []int {
	out := sorted[:0]
	for i, x := range sorted {
		if i == 0 || x != sorted[i-1] {
			out = append(out, x)
		}
	}
	return out
}
