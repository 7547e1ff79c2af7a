// Package presenter implements the engine that sits between a data source and
// a view of a windowed list of rows.
//
// A Presenter keeps a committed state that matches what the view shows, and
// a pending state that absorbs mutations. Mutations never touch the view
// directly. The pending state is resolved in one pass at the end of the turn
// (or when Flush is called), and the pass pushes the minimal change to the
// view: nothing, a styling change of the keyboard-selected rows, a patch of
// the changed row ranges, or a full redraw.
//
// A Presenter is not safe for concurrent use. Asynchronous data should be
// posted to the goroutine that owns it, see package sched.
package presenter

import (
	"sort"

	"src.cellview.dev/pkg/logutil"
	"src.cellview.dev/pkg/selection"
)

var logger = logutil.GetLogger("[presenter] ")

// Presenter reconciles data, visible range, keyboard selection and selection
// state, and pushes the changes to a View.
type Presenter[T any] struct {
	view View[T]
	cfg  Config[T]

	selModel          selection.Model[T]
	removeSelHandler  func()
	kbSelectionPolicy KeyboardSelectionPolicy
	kbPagingPolicy    KeyboardPagingPolicy

	state   state[T]
	pending *pendingState[T]

	// Sequence number of the last scheduled flush; scheduled flushes with an
	// older number do nothing.
	armedFlush int
	resolving  bool
	rendering  bool
	// Incremented by every mutation of the pending state.
	mutations int
	// Error from a mutation attempted while rendering.
	renderErr error

	lastMarkup     string
	hasLastMarkup  bool
	lastResolution Resolution
	loadingState   LoadingState

	rangeHandlers handlerList[func(Range)]
	countHandlers handlerList[func(count int, exact bool)]
}

// New creates a Presenter that pushes changes to view.
func New[T any](view View[T], cfg Config[T]) *Presenter[T] {
	cfg = cfg.withDefaults()
	p := &Presenter[T]{
		view:              view,
		cfg:               cfg,
		kbSelectionPolicy: cfg.KeyboardSelection,
		kbPagingPolicy:    cfg.KeyboardPaging,
	}
	p.state.pageSize = cfg.PageSize
	p.state.selected = make(selectedRows)
	return p
}

// current returns the pending state if there is one, or the committed state.
func (p *Presenter[T]) current() *state[T] {
	if p.pending != nil {
		return &p.pending.state
	}
	return &p.state
}

// VisibleRange returns the visible range.
func (p *Presenter[T]) VisibleRange() Range { return p.current().visibleRange() }

// RowCount returns the row count.
func (p *Presenter[T]) RowCount() int { return p.current().rowCount }

// IsRowCountExact returns whether the row count is exact, as opposed to an
// estimate.
func (p *Presenter[T]) IsRowCountExact() bool { return p.current().rowCountExact }

// RowDataSize returns the number of cached rows of the page, including
// placeholders.
func (p *Presenter[T]) RowDataSize() int { return len(p.current().rows) }

// RowData returns a copy of the cached rows of the page.
func (p *Presenter[T]) RowData() []Slot[T] {
	return append([]Slot[T](nil), p.current().rows...)
}

// VisibleItems returns the known values of the cached rows, in order.
func (p *Presenter[T]) VisibleItems() []T {
	var values []T
	for _, row := range p.current().rows {
		if row.Known {
			values = append(values, row.Value)
		}
	}
	return values
}

// VisibleItem returns the cached row at the page-relative index i, which
// must be in [0, RowDataSize()).
func (p *Presenter[T]) VisibleItem(i int) (Slot[T], error) {
	s := p.current()
	if i < 0 || i >= len(s.rows) {
		return Slot[T]{}, &BoundsError{What: "row index", Index: i, Low: 0, High: len(s.rows)}
	}
	return s.rows[i], nil
}

// Slot returns the row at the page-relative index i, which must be in
// [0, page size). Rows beyond the cached data are placeholders.
func (p *Presenter[T]) Slot(i int) (Slot[T], error) {
	s := p.current()
	if i < 0 || i >= s.pageSize {
		return Slot[T]{}, &BoundsError{What: "row index", Index: i, Low: 0, High: s.pageSize}
	}
	return s.slot(i), nil
}

// KeyboardSelectedRow returns the page-relative index of the
// keyboard-selected row. It is 0 when keyboard selection is disabled.
func (p *Presenter[T]) KeyboardSelectedRow() int {
	if p.kbSelectionPolicy == KeyboardDisabled {
		return 0
	}
	return p.current().kbRow
}

// KeyboardSelectedValue returns the value of the keyboard-selected row as of
// the last time it was resolved.
func (p *Presenter[T]) KeyboardSelectedValue() Slot[T] {
	if p.kbSelectionPolicy == KeyboardDisabled {
		return Slot[T]{}
	}
	return p.current().kbValue
}

// IsRowSelected reports whether the row at the absolute index was selected
// as of the last resolution pass.
func (p *Presenter[T]) IsRowSelected(i int) bool {
	_, ok := p.current().selected[i]
	return ok
}

// SelectedRows returns the sorted absolute indices of selected rows as of
// the last resolution pass.
func (p *Presenter[T]) SelectedRows() []int { return p.current().selected.sorted() }

// SelectionModel returns the selection model, or nil.
func (p *Presenter[T]) SelectionModel() selection.Model[T] { return p.selModel }

// LoadingState returns the loading state pushed to the view by the last
// resolution pass.
func (p *Presenter[T]) LoadingState() LoadingState { return p.loadingState }

// HasPendingState reports whether there are unresolved mutations.
func (p *Presenter[T]) HasPendingState() bool { return p.pending != nil }

// IsEmpty reports whether the row count is exactly 0.
func (p *Presenter[T]) IsEmpty() bool {
	s := p.current()
	return s.rowCountExact && s.rowCount == 0
}

// LastResolution describes what the last resolution pass pushed to the view.
func (p *Presenter[T]) LastResolution() Resolution { return p.lastResolution }

// KeyboardSelectionPolicy returns the keyboard selection policy.
func (p *Presenter[T]) KeyboardSelectionPolicy() KeyboardSelectionPolicy {
	return p.kbSelectionPolicy
}

// KeyboardPagingPolicy returns the keyboard paging policy.
func (p *Presenter[T]) KeyboardPagingPolicy() KeyboardPagingPolicy { return p.kbPagingPolicy }

// OnRangeChange adds a handler called synchronously whenever the visible
// range changes, and when Refresh is called. It returns a function that
// removes the handler.
func (p *Presenter[T]) OnRangeChange(f func(Range)) func() { return p.rangeHandlers.add(f) }

// OnRowCountChange adds a handler called synchronously whenever the row
// count changes. It returns a function that removes the handler.
func (p *Presenter[T]) OnRowCountChange(f func(count int, exact bool)) func() {
	return p.countHandlers.add(f)
}

func (p *Presenter[T]) fireRangeChange() {
	r := p.VisibleRange()
	p.rangeHandlers.each(func(f func(Range)) { f(r) })
}

func (p *Presenter[T]) fireRowCountChange() {
	count, exact := p.RowCount(), p.IsRowCountExact()
	p.countHandlers.each(func(f func(int, bool)) { f(count, exact) })
}

// SetRowData pushes values, the first of which is at the absolute index
// start. Values outside the visible range are ignored, unless start is the
// start of the visible range. The row count grows to cover the values if
// necessary.
func (p *Presenter[T]) SetRowData(start int, values []T) error {
	if start < 0 {
		return &BoundsError{What: "row data start", Index: start, Low: 0, High: -1}
	}
	s := p.current()
	end := start + len(values)
	if start != s.pageStart && (end <= s.pageStart || start >= s.pageStart+s.pageSize) {
		return nil
	}
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	replaced, ok := pending.setData(start, values)
	if !ok {
		return nil
	}
	pending.replaced = append(pending.replaced, replaced)
	if end > pending.rowCount {
		return p.setRowCount(end, pending.rowCountExact)
	}
	return nil
}

// SetRowCount sets the row count, and whether it is exact.
func (p *Presenter[T]) SetRowCount(count int, exact bool) error {
	if count < 0 {
		return &BoundsError{What: "row count", Index: count, Low: 0, High: -1}
	}
	return p.setRowCount(count, exact)
}

func (p *Presenter[T]) setRowCount(count int, exact bool) error {
	if s := p.current(); s.rowCount == count && s.rowCountExact == exact {
		return nil
	}
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	pending.rowCount, pending.rowCountExact = count, exact
	if err := p.trimCache(); err != nil {
		return err
	}
	p.fireRowCountChange()
	return nil
}

// trimCache drops cached rows that can no longer be on the page.
func (p *Presenter[T]) trimCache() error {
	if s := p.current(); len(s.rows) <= s.expectedSize() {
		return nil
	}
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	pending.selected.removeRange(pending.trim())
	return nil
}

// SetVisibleRange sets the visible range, keeping the cached rows that are
// still visible.
func (p *Presenter[T]) SetVisibleRange(r Range) error {
	return p.setVisibleRange(r, false, false)
}

// SetVisibleRangeAndClearData sets the visible range and drops all cached
// rows. If forceEvent is true, range change handlers are called even if the
// range did not change.
func (p *Presenter[T]) SetVisibleRangeAndClearData(r Range, forceEvent bool) error {
	return p.setVisibleRange(r, true, forceEvent)
}

func (p *Presenter[T]) setVisibleRange(r Range, clearData, forceEvent bool) error {
	if err := checkRange(r.Start, r.Length); err != nil {
		return err
	}
	oldStart := p.current().pageStart
	changed := false
	if clearData || r.Start != oldStart {
		pending, err := p.ensurePending()
		if err != nil {
			return err
		}
		if clearData {
			pending.rows = nil
			pending.pageStart = r.Start
		} else if inserted, ok := pending.shift(r.Start, r.Length); ok {
			pending.replaced = append(pending.replaced, inserted)
		}
		changed = r.Start != oldStart
	}
	if r.Length != p.current().pageSize {
		pending, err := p.ensurePending()
		if err != nil {
			return err
		}
		pending.pageSize = r.Length
		changed = true
	}
	if err := p.trimCache(); err != nil {
		return err
	}
	if changed || forceEvent {
		p.fireRangeChange()
	}
	return nil
}

// SetSelectionModel sets the selection model, which may be nil. The
// presenter observes the model's changes until it is replaced.
func (p *Presenter[T]) SetSelectionModel(m selection.Model[T]) error {
	if p.removeSelHandler != nil {
		p.removeSelHandler()
		p.removeSelHandler = nil
	}
	p.selModel = m
	if m != nil {
		p.removeSelHandler = m.OnChange(p.selectionChanged)
	}
	_, err := p.ensurePending()
	return err
}

func (p *Presenter[T]) selectionChanged() {
	// A failure here is reported by the resolution pass in progress.
	p.ensurePending()
}

// Redraw forces the next resolution pass to render all rows. The view is
// not written if the rendered markup is unchanged.
func (p *Presenter[T]) Redraw() error {
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	pending.redrawRequired = true
	return nil
}

// MarkTouched records that the user has interacted with the view, which
// enables binding keyboard selection to the selection model.
func (p *Presenter[T]) MarkTouched() error {
	pending, err := p.ensurePending()
	if err != nil {
		return err
	}
	pending.viewTouched = true
	return nil
}

// Refresh calls the range change handlers with the current visible range,
// asking the data source to push the data again.
func (p *Presenter[T]) Refresh() {
	p.fireRangeChange()
}

// Close detaches the presenter from its selection model.
func (p *Presenter[T]) Close() {
	if p.removeSelHandler != nil {
		p.removeSelHandler()
		p.removeSelHandler = nil
	}
}

// handlerList is an ordered list of handlers that can be removed by the
// function returned from add.
type handlerList[F any] struct {
	nextID int
	ids    []int
	fns    map[int]F
}

func (l *handlerList[F]) add(f F) func() {
	if l.fns == nil {
		l.fns = make(map[int]F)
	}
	id := l.nextID
	l.nextID++
	l.ids = append(l.ids, id)
	l.fns[id] = f
	return func() {
		delete(l.fns, id)
		i := sort.SearchInts(l.ids, id)
		if i < len(l.ids) && l.ids[i] == id {
			l.ids = append(l.ids[:i:i], l.ids[i+1:]...)
		}
	}
}

// each calls g on a snapshot of the handlers, so handlers may add or remove
// handlers.
func (l *handlerList[F]) each(g func(F)) {
	for _, id := range append([]int(nil), l.ids...) {
		if f, ok := l.fns[id]; ok {
			g(f)
		}
	}
}
