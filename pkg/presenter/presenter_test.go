package presenter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.cellview.dev/pkg/sched"
	"src.cellview.dev/pkg/selection"
)

// fakeView records the writes made by the presenter.
type fakeView struct {
	calls    []string
	loading  []LoadingState
	onRender func()
}

func (v *fakeView) Render(values []Slot[int], start int, sel selection.Model[int]) string {
	if v.onRender != nil {
		v.onRender()
	}
	var sb strings.Builder
	for _, s := range values {
		switch {
		case !s.Known:
			sb.WriteString("[?]")
		case sel != nil && sel.IsSelected(s.Value):
			fmt.Fprintf(&sb, "[%d*]", s.Value)
		default:
			fmt.Fprintf(&sb, "[%d]", s.Value)
		}
	}
	return sb.String()
}

func (v *fakeView) ReplaceAllChildren(values []Slot[int], markup string, stealFocus bool) {
	v.calls = append(v.calls, "all:"+markup)
}

func (v *fakeView) ReplaceChildren(values []Slot[int], start int, markup string, stealFocus bool) {
	v.calls = append(v.calls, fmt.Sprintf("at %d:%s", start, markup))
}

func (v *fakeView) SetKeyboardSelected(index int, selected, stealFocus bool) {
	v.calls = append(v.calls, fmt.Sprintf("kb %d %v %v", index, selected, stealFocus))
}

func (v *fakeView) SetLoadingState(state LoadingState) { v.loading = append(v.loading, state) }

func (v *fakeView) ResetFocus() { v.calls = append(v.calls, "focus") }

func (v *fakeView) takeCalls() []string {
	calls := v.calls
	v.calls = nil
	return calls
}

func seq(start, n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = start + i
	}
	return values
}

func markup(values ...int) string {
	var sb strings.Builder
	for _, v := range values {
		fmt.Fprintf(&sb, "[%d]", v)
	}
	return sb.String()
}

func setup(t *testing.T, cfg Config[int]) (*Presenter[int], *fakeView) {
	t.Helper()
	v := &fakeView{}
	cfg.OnError = func(err error) { t.Errorf("scheduled flush: %v", err) }
	return New[int](v, cfg), v
}

// setupLoaded returns a presenter showing the rows [0, n) on a page of the
// given size, with an exact row count of n.
func setupLoaded(t *testing.T, pageSize, n int) (*Presenter[int], *fakeView) {
	t.Helper()
	p, v := setup(t, Config[int]{PageSize: pageSize})
	mustOK(t, p.SetRowCount(n, true))
	mustOK(t, p.SetRowData(0, seq(0, min(n, pageSize))))
	mustOK(t, p.Flush())
	v.takeCalls()
	return p, v
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("got error %v", err)
	}
}

func checkResolution(t *testing.T, p *Presenter[int], wantStrategy Strategy, wantRanges []Range) {
	t.Helper()
	res := p.LastResolution()
	if res.Strategy != wantStrategy {
		t.Errorf("got strategy %v, want %v", res.Strategy, wantStrategy)
	}
	if diff := cmp.Diff(wantRanges, res.Ranges); diff != "" {
		t.Errorf("ranges (-want +got):\n%s", diff)
	}
}

func checkCalls(t *testing.T, v *fakeView, want ...string) {
	t.Helper()
	if diff := cmp.Diff(want, v.takeCalls()); diff != "" {
		t.Errorf("view calls (-want +got):\n%s", diff)
	}
}

func TestFirstLoad_Redraws(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 5})
	mustOK(t, p.SetRowCount(20, true))
	mustOK(t, p.SetRowData(0, seq(0, 5)))
	if !p.HasPendingState() {
		t.Errorf("no pending state after mutations")
	}
	if len(v.calls) != 0 {
		t.Errorf("view written before flush: %v", v.calls)
	}
	mustOK(t, p.Flush())

	checkResolution(t, p, Redraw, []Range{{0, 5}})
	checkCalls(t, v, "all:"+markup(0, 1, 2, 3, 4), "focus")
	if p.HasPendingState() {
		t.Errorf("pending state after flush")
	}
}

func TestRedraw_SkipsUnchangedMarkup(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	for i := 0; i < 2; i++ {
		mustOK(t, p.Redraw())
		mustOK(t, p.Flush())
		if res := p.LastResolution(); res.Strategy != Redraw || !res.MarkupSkipped {
			t.Errorf("got resolution %v, want skipped redraw", res)
		}
		checkCalls(t, v)
	}
}

func TestRedraw_AfterPatchWritesAgain(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	mustOK(t, p.SetRowData(4, []int{40}))
	mustOK(t, p.Flush())
	checkCalls(t, v, "at 4:[40]", "focus")

	mustOK(t, p.Redraw())
	mustOK(t, p.Flush())
	checkCalls(t, v, "all:"+markup(0, 1, 2, 3, 40, 5, 6, 7, 8, 9), "focus")
}

var thresholdTests = []struct {
	name         string
	rows         int
	replaced     int
	wantStrategy Strategy
}{
	{"6 of 20 rows", 20, 6, Patch},
	{"7 of 20 rows", 20, 7, Redraw},
	{"4 of 10 rows", 10, 4, Patch},
	{"5 of 10 rows", 10, 5, Redraw},
	{"1 of 3 rows", 3, 1, Patch},
}

func TestRedrawThreshold(t *testing.T) {
	for _, test := range thresholdTests {
		t.Run(test.name, func(t *testing.T) {
			p, v := setupLoaded(t, test.rows, test.rows)
			mustOK(t, p.SetRowData(1, seq(101, test.replaced)))
			mustOK(t, p.Flush())
			checkResolution(t, p, test.wantStrategy, []Range{{1, test.replaced}})
			if test.wantStrategy == Patch {
				checkCalls(t, v, "at 1:"+markup(seq(101, test.replaced)...), "focus")
			}
		})
	}
}

func TestFullReplacement_Redraws(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	mustOK(t, p.SetRowData(0, seq(100, 10)))
	mustOK(t, p.Flush())
	checkResolution(t, p, Redraw, []Range{{0, 10}})
	checkCalls(t, v, "all:"+markup(seq(100, 10)...), "focus")
}

func TestShrinkingData_Redraws(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	mustOK(t, p.SetRowCount(8, true))
	mustOK(t, p.Flush())
	checkResolution(t, p, Redraw, nil)
	checkCalls(t, v, "all:"+markup(seq(0, 8)...), "focus")
}

func TestSetVisibleRange_ShiftForwardReusesCache(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	var ranges []Range
	p.OnRangeChange(func(r Range) { ranges = append(ranges, r) })

	mustOK(t, p.SetVisibleRange(Range{5, 10}))

	if diff := cmp.Diff([]Range{{5, 10}}, ranges); diff != "" {
		t.Errorf("range change events (-want +got):\n%s", diff)
	}
	for i := 0; i < 10; i++ {
		got, err := p.Slot(i)
		mustOK(t, err)
		want := Slot[int]{}
		if i < 5 {
			want = SlotOf(i + 5)
		}
		if got != want {
			t.Errorf("Slot(%d) = %v, want %v", i, got, want)
		}
	}
	if n := p.RowDataSize(); n != 5 {
		t.Errorf("RowDataSize() = %d, want 5", n)
	}
	mustOK(t, p.Flush())
	checkResolution(t, p, Redraw, nil)
	if s := p.LoadingState(); s != PartiallyLoaded {
		t.Errorf("got loading state %v, want %v", s, PartiallyLoaded)
	}
}

func TestSetVisibleRange_ShiftBackwardInsertsPlaceholders(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 10})
	mustOK(t, p.SetRowCount(100, true))
	mustOK(t, p.SetVisibleRange(Range{5, 10}))
	mustOK(t, p.SetRowData(5, seq(5, 10)))
	mustOK(t, p.Flush())
	v.takeCalls()

	mustOK(t, p.SetVisibleRange(Range{2, 10}))
	want := append([]Slot[int]{{}, {}, {}}, SlotsOf(seq(5, 7)...)...)
	if diff := cmp.Diff(want, p.RowData()); diff != "" {
		t.Errorf("row data (-want +got):\n%s", diff)
	}
	mustOK(t, p.Flush())
	checkCalls(t, v, "all:[?][?][?]"+markup(seq(5, 7)...), "focus")
}

func TestSetVisibleRange_ShiftByMoreThanAPageClears(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	mustOK(t, p.SetVisibleRange(Range{20, 10}))
	if n := p.RowDataSize(); n != 0 {
		t.Errorf("RowDataSize() = %d, want 0", n)
	}
	mustOK(t, p.SetVisibleRange(Range{0, 10}))
	if n := p.RowDataSize(); n != 0 {
		t.Errorf("RowDataSize() = %d, want 0", n)
	}
}

func TestSetVisibleRangeAndClearData(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	events := 0
	p.OnRangeChange(func(Range) { events++ })
	mustOK(t, p.SetVisibleRangeAndClearData(Range{0, 10}, true))
	if n := p.RowDataSize(); n != 0 {
		t.Errorf("RowDataSize() = %d, want 0", n)
	}
	if events != 1 {
		t.Errorf("got %d range change events, want 1", events)
	}
}

func TestSetVisibleRangeAndClearData_SameRangeNoEvent(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	events := 0
	p.OnRangeChange(func(Range) { events++ })
	mustOK(t, p.SetVisibleRangeAndClearData(Range{0, 10}, false))
	if n := p.RowDataSize(); n != 0 {
		t.Errorf("RowDataSize() = %d, want 0", n)
	}
	if events != 0 {
		t.Errorf("got %d range change events, want 0", events)
	}
	mustOK(t, p.SetVisibleRangeAndClearData(Range{10, 10}, false))
	if events != 1 {
		t.Errorf("got %d range change events, want 1", events)
	}
}

func TestSetVisibleRange_SameRangeNoEvent(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	events := 0
	p.OnRangeChange(func(Range) { events++ })
	mustOK(t, p.SetVisibleRange(Range{0, 10}))
	if events != 0 || p.HasPendingState() {
		t.Errorf("got %d events, pending = %v; want no effect", events, p.HasPendingState())
	}
}

func TestNegativeArguments(t *testing.T) {
	p, _ := setup(t, Config[int]{})
	for _, err := range []error{
		p.SetVisibleRange(Range{-1, 10}),
		p.SetVisibleRange(Range{0, -1}),
		p.SetRowCount(-1, true),
		p.SetRowData(-1, []int{1}),
	} {
		var boundsErr *BoundsError
		if !errors.As(err, &boundsErr) {
			t.Errorf("got error %v, want *BoundsError", err)
		}
	}
	if _, err := NewRange(-1, 0); err == nil {
		t.Errorf("NewRange(-1, 0) returns no error")
	}
	if _, err := p.VisibleItem(0); err == nil {
		t.Errorf("VisibleItem(0) returns no error with no row data")
	}
	if p.HasPendingState() {
		t.Errorf("invalid arguments created pending state")
	}
}

func TestSetRowData_OutsidePageIgnored(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	mustOK(t, p.SetRowData(30, seq(30, 5)))
	if p.HasPendingState() {
		t.Errorf("data outside the page created pending state")
	}
}

func TestSetRowData_GapFilledWithPlaceholders(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 10})
	mustOK(t, p.SetRowData(3, []int{3, 4}))
	want := []Slot[int]{{}, {}, {}, SlotOf(3), SlotOf(4)}
	if diff := cmp.Diff(want, p.RowData()); diff != "" {
		t.Errorf("row data (-want +got):\n%s", diff)
	}
	if n := p.RowCount(); n != 5 {
		t.Errorf("RowCount() = %d, want 5", n)
	}
	mustOK(t, p.Flush())
	checkCalls(t, v, "all:[?][?][?][3][4]", "focus")
}

func TestSetRowData_EmptyOnEmptyRedraws(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 10})
	mustOK(t, p.SetRowCount(0, true))
	mustOK(t, p.SetRowData(0, nil))
	mustOK(t, p.Flush())
	checkResolution(t, p, Redraw, nil)
	checkCalls(t, v, "all:", "focus")
	if !p.IsEmpty() {
		t.Errorf("IsEmpty() = false")
	}
}

func TestSetRowCount_EventAndTrim(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	type countEvent struct {
		Count int
		Exact bool
	}
	var events []countEvent
	p.OnRowCountChange(func(count int, exact bool) { events = append(events, countEvent{count, exact}) })

	mustOK(t, p.SetRowCount(100, true))
	mustOK(t, p.SetRowCount(4, true))
	mustOK(t, p.SetRowCount(4, false))

	want := []countEvent{{4, true}, {4, false}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("row count events (-want +got):\n%s", diff)
	}
	if n := p.RowDataSize(); n != 4 {
		t.Errorf("RowDataSize() = %d, want 4", n)
	}
}

func TestSelectionFlip_PatchesOneRow(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 10})
	sel := selection.NewMulti[int](nil)
	mustOK(t, p.SetSelectionModel(sel))
	mustOK(t, p.SetRowData(0, seq(0, 10)))
	mustOK(t, p.Flush())
	v.takeCalls()

	sel.SetSelected(7, true)
	if !p.HasPendingState() {
		t.Fatalf("selection change did not create pending state")
	}
	mustOK(t, p.Flush())
	checkResolution(t, p, Patch, []Range{{7, 1}})
	checkCalls(t, v, "at 7:[7*]", "focus")
	if !p.IsRowSelected(7) {
		t.Errorf("row 7 not selected")
	}
	if diff := cmp.Diff([]int{7}, p.SelectedRows()); diff != "" {
		t.Errorf("selected rows (-want +got):\n%s", diff)
	}
}

func TestSelectionModel_Replaced(t *testing.T) {
	p, _ := setupLoaded(t, 10, 10)
	sel := selection.NewMulti[int](nil)
	mustOK(t, p.SetSelectionModel(sel))
	mustOK(t, p.SetSelectionModel(nil))
	mustOK(t, p.Flush())
	sel.SetSelected(3, true)
	if p.HasPendingState() {
		t.Errorf("old selection model still observed")
	}
}

func TestKeyboardMove_StyleOnly(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	mustOK(t, p.SetKeyboardSelectedRow(2, false, false))
	mustOK(t, p.Flush())
	checkResolution(t, p, StyleOnly, nil)
	checkCalls(t, v, "kb 0 false false", "kb 2 true false")

	mustOK(t, p.SetKeyboardSelectedRow(3, true, false))
	mustOK(t, p.Flush())
	checkResolution(t, p, StyleOnly, nil)
	checkCalls(t, v, "kb 2 false false", "kb 3 true true")
	if got := p.KeyboardSelectedValue(); got != SlotOf(3) {
		t.Errorf("KeyboardSelectedValue() = %v, want 3", got)
	}
}

func TestKeyboardMove_WithModifiedRowsPatchesBoth(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	mustOK(t, p.SetRowData(8, []int{80}))
	mustOK(t, p.SetKeyboardSelectedRow(1, false, false))
	mustOK(t, p.Flush())
	checkResolution(t, p, Patch, []Range{{0, 2}, {8, 1}})
	checkCalls(t, v, "at 0:[0][1]", "at 8:[80]", "focus")
}

func TestKeyboardSelectedRow_SameRowIsNoOp(t *testing.T) {
	p, _ := setupLoaded(t, 10, 10)
	mustOK(t, p.SetKeyboardSelectedRow(2, false, false))
	mustOK(t, p.Flush())
	mustOK(t, p.SetKeyboardSelectedRow(2, false, false))
	mustOK(t, p.Flush())
	checkResolution(t, p, NoOp, nil)
}

func TestKeyboardSelectedRow_ClampedAfterShrink(t *testing.T) {
	p, _ := setupLoaded(t, 10, 10)
	mustOK(t, p.SetKeyboardSelectedRow(6, false, false))
	mustOK(t, p.Flush())
	mustOK(t, p.ClearKeyboardSelectedRowValue())
	mustOK(t, p.SetRowCount(3, true))
	mustOK(t, p.Flush())
	if got := p.KeyboardSelectedRow(); got != 2 {
		t.Errorf("KeyboardSelectedRow() = %d, want 2", got)
	}
}

func TestKeyboardSelectedRow_ClampedToExactCount(t *testing.T) {
	p, _ := setupLoaded(t, 10, 5)
	mustOK(t, p.SetKeyboardSelectedRow(8, false, false))
	mustOK(t, p.Flush())
	if got := p.KeyboardSelectedRow(); got != 4 {
		t.Errorf("KeyboardSelectedRow() = %d, want 4", got)
	}
	if r := p.VisibleRange(); r != (Range{0, 10}) {
		t.Errorf("VisibleRange() = %v, want [0, 10)", r)
	}
}

var bestMatchTests = []struct {
	name    string
	before  []int
	kbRow   int
	after   []int
	wantRow int
	wantVal Slot[int]
}{
	{"moved", seq(0, 5), 2, []int{9, 2, 8, 7, 6}, 1, SlotOf(2)},
	{"closest of two", []int{1, 1, 5, 1, 1}, 2, []int{9, 9, 9, 5, 5}, 3, SlotOf(5)},
	{"first of two equally close", []int{1, 1, 5, 1, 1}, 2, []int{5, 9, 9, 9, 5}, 0, SlotOf(5)},
	{"gone", seq(0, 5), 2, seq(10, 5), 0, Slot[int]{}},
}

func TestKeyboardSelectedRow_FollowsValue(t *testing.T) {
	for _, test := range bestMatchTests {
		t.Run(test.name, func(t *testing.T) {
			p, _ := setup(t, Config[int]{PageSize: 5})
			mustOK(t, p.SetRowData(0, test.before))
			mustOK(t, p.SetKeyboardSelectedRow(test.kbRow, false, false))
			mustOK(t, p.Flush())

			mustOK(t, p.SetRowData(0, test.after))
			mustOK(t, p.Flush())
			if got := p.KeyboardSelectedRow(); got != test.wantRow {
				t.Errorf("KeyboardSelectedRow() = %d, want %d", got, test.wantRow)
			}
			if got := p.KeyboardSelectedValue(); got != test.wantVal {
				t.Errorf("KeyboardSelectedValue() = %v, want %v", got, test.wantVal)
			}
		})
	}
}

func TestKeyboardSelectionDisabled(t *testing.T) {
	p, v := setupLoaded(t, 10, 10)
	mustOK(t, p.SetKeyboardSelectedRow(4, false, false))
	mustOK(t, p.Flush())
	v.takeCalls()

	mustOK(t, p.SetKeyboardSelectionPolicy(KeyboardDisabled))
	mustOK(t, p.SetKeyboardSelectedRow(6, false, false))
	mustOK(t, p.Flush())
	// The old row loses its styling; no row gains it.
	checkCalls(t, v, "kb 4 false false")
	if got := p.KeyboardSelectedRow(); got != 0 {
		t.Errorf("KeyboardSelectedRow() = %d, want 0", got)
	}
	if got := p.KeyboardSelectedValue(); got.Known {
		t.Errorf("KeyboardSelectedValue() = %v, want unknown", got)
	}
	if p.HasKeyboardNext() || p.HasKeyboardPrev() {
		t.Errorf("keyboard movement possible when disabled")
	}
}

func TestKeyboardPaging_ChangePage(t *testing.T) {
	p, _ := setupLoaded(t, 10, 100)
	mustOK(t, p.SetKeyboardSelectedRow(9, false, false))
	mustOK(t, p.Flush())
	mustOK(t, p.KeyboardNext())
	if r := p.VisibleRange(); r != (Range{10, 10}) {
		t.Errorf("VisibleRange() = %v, want [10, 20)", r)
	}
	if got := p.KeyboardSelectedRow(); got != 0 {
		t.Errorf("KeyboardSelectedRow() = %d, want 0", got)
	}
	mustOK(t, p.KeyboardPrev())
	if r := p.VisibleRange(); r != (Range{0, 10}) {
		t.Errorf("VisibleRange() = %v, want [0, 10)", r)
	}
	if got := p.KeyboardSelectedRow(); got != 9 {
		t.Errorf("KeyboardSelectedRow() = %d, want 9", got)
	}

	mustOK(t, p.KeyboardEnd())
	if r, row := p.VisibleRange(), p.KeyboardSelectedRow(); r != (Range{90, 10}) || row != 9 {
		t.Errorf("after KeyboardEnd: range %v row %d, want [90, 100) row 9", r, row)
	}
	mustOK(t, p.KeyboardHome())
	if r, row := p.VisibleRange(), p.KeyboardSelectedRow(); r != (Range{0, 10}) || row != 0 {
		t.Errorf("after KeyboardHome: range %v row %d, want [0, 10) row 0", r, row)
	}
	mustOK(t, p.KeyboardNextPage())
	if r := p.VisibleRange(); r != (Range{10, 10}) {
		t.Errorf("after KeyboardNextPage: range %v, want [10, 20)", r)
	}
	mustOK(t, p.KeyboardPrevPage())
	if r := p.VisibleRange(); r != (Range{0, 10}) {
		t.Errorf("after KeyboardPrevPage: range %v, want [0, 10)", r)
	}
}

func TestKeyboardPaging_CurrentPage(t *testing.T) {
	p, _ := setup(t, Config[int]{PageSize: 10, KeyboardPaging: CurrentPage})
	mustOK(t, p.SetRowCount(100, true))
	mustOK(t, p.SetRowData(0, seq(0, 10)))
	mustOK(t, p.SetKeyboardSelectedRow(25, false, false))
	mustOK(t, p.Flush())
	if got := p.KeyboardSelectedRow(); got != 9 {
		t.Errorf("KeyboardSelectedRow() = %d, want 9", got)
	}
	if p.HasKeyboardNext() {
		t.Errorf("HasKeyboardNext() = true at the end of the page")
	}
	mustOK(t, p.KeyboardEnd())
	mustOK(t, p.KeyboardNextPage())
	if r := p.VisibleRange(); r != (Range{0, 10}) {
		t.Errorf("VisibleRange() = %v, want [0, 10)", r)
	}
}

func TestKeyboardPaging_IncreaseRange(t *testing.T) {
	p, _ := setup(t, Config[int]{PageSize: 10, KeyboardPaging: IncreaseRange, PageIncrement: 5})
	mustOK(t, p.SetRowCount(12, true))
	mustOK(t, p.SetRowData(0, seq(0, 10)))
	mustOK(t, p.SetKeyboardSelectedRow(9, false, false))
	mustOK(t, p.Flush())

	mustOK(t, p.KeyboardNext())
	if r := p.VisibleRange(); r != (Range{0, 12}) {
		t.Errorf("VisibleRange() = %v, want [0, 12)", r)
	}
	if got := p.KeyboardSelectedRow(); got != 10 {
		t.Errorf("KeyboardSelectedRow() = %d, want 10", got)
	}
}

func TestKeyboardPaging_IncreaseRangeBackwardKeepsRows(t *testing.T) {
	p, _ := setup(t, Config[int]{PageSize: 10, KeyboardPaging: IncreaseRange, PageIncrement: 10})
	mustOK(t, p.SetRowCount(100, true))
	mustOK(t, p.SetVisibleRange(Range{10, 10}))
	mustOK(t, p.SetRowData(10, seq(10, 10)))
	mustOK(t, p.Flush())

	mustOK(t, p.KeyboardPrev())
	if r := p.VisibleRange(); r != (Range{0, 20}) {
		t.Errorf("VisibleRange() = %v, want [0, 20)", r)
	}
	if got := p.KeyboardSelectedRow(); got != 9 {
		t.Errorf("KeyboardSelectedRow() = %d, want 9", got)
	}
	want := append(make([]Slot[int], 10), SlotsOf(seq(10, 10)...)...)
	if diff := cmp.Diff(want, p.RowData()); diff != "" {
		t.Errorf("row data (-want +got):\n%s", diff)
	}
}

func TestBoundToSelection(t *testing.T) {
	p, _ := setup(t, Config[int]{PageSize: 10, KeyboardSelection: KeyboardBoundToSelection})
	sel := selection.NewSingle[int](nil)
	mustOK(t, p.SetSelectionModel(sel))
	mustOK(t, p.SetRowData(0, seq(0, 10)))
	mustOK(t, p.Flush())
	if _, ok := sel.Selected(); ok {
		t.Errorf("value selected before the view was touched")
	}

	mustOK(t, p.SetKeyboardSelectedRow(3, true, false))
	mustOK(t, p.Flush())
	if v, ok := sel.Selected(); !ok || v != 3 {
		t.Errorf("selected %v %v, want 3", v, ok)
	}

	mustOK(t, p.KeyboardNext())
	mustOK(t, p.Flush())
	if v, ok := sel.Selected(); !ok || v != 4 {
		t.Errorf("selected %v %v, want 4", v, ok)
	}
	if diff := cmp.Diff([]int{4}, p.SelectedRows()); diff != "" {
		t.Errorf("selected rows (-want +got):\n%s", diff)
	}
	if p.HasPendingState() {
		t.Errorf("pending state after flush")
	}
}

// restlessModel reports a change whenever it is consulted.
type restlessModel struct{ handlers []func() }

func (m *restlessModel) IsSelected(int) bool {
	for _, f := range m.handlers {
		f()
	}
	return false
}

func (m *restlessModel) SetSelected(int, bool) {}

func (m *restlessModel) OnChange(f func()) func() {
	m.handlers = append(m.handlers, f)
	return func() { m.handlers = nil }
}

func TestFlush_InfiniteLoop(t *testing.T) {
	p, _ := setup(t, Config[int]{PageSize: 10})
	mustOK(t, p.SetRowData(0, seq(0, 10)))
	mustOK(t, p.SetSelectionModel(&restlessModel{}))
	if err := p.Flush(); !errors.Is(err, ErrInfiniteLoop) {
		t.Errorf("Flush() -> %v, want ErrInfiniteLoop", err)
	}
}

func TestModifyWhileRendering(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 10})
	var renderErr error
	v.onRender = func() { renderErr = p.SetRowData(0, []int{100}) }
	mustOK(t, p.SetRowData(0, seq(0, 10)))

	if err := p.Flush(); err != ErrModifyWhileRendering {
		t.Errorf("Flush() -> %v, want ErrModifyWhileRendering", err)
	}
	if renderErr != ErrModifyWhileRendering {
		t.Errorf("mutation while rendering -> %v, want ErrModifyWhileRendering", renderErr)
	}
	if got, _ := p.VisibleItem(0); got != SlotOf(0) {
		t.Errorf("VisibleItem(0) = %v, want 0", got)
	}
}

func TestLoadingState(t *testing.T) {
	p, v := setup(t, Config[int]{PageSize: 10})
	steps := []struct {
		f    func() error
		want LoadingState
	}{
		{func() error { return p.SetRowCount(0, true) }, Empty},
		{func() error { return p.SetRowCount(25, true) }, Loading},
		{func() error { return p.SetRowData(0, seq(0, 5)) }, PartiallyLoaded},
		{func() error { return p.SetRowData(5, seq(5, 5)) }, Loaded},
		{func() error { return p.SetVisibleRange(Range{20, 10}) }, Loading},
		{func() error { return p.SetRowData(20, seq(20, 5)) }, Loaded},
		{func() error { return p.SetRowCount(30, false) }, PartiallyLoaded},
	}
	for i, step := range steps {
		mustOK(t, step.f())
		mustOK(t, p.Flush())
		if got := p.LoadingState(); got != step.want {
			t.Errorf("step %d: got loading state %v, want %v", i, got, step.want)
		}
		if got := v.loading[len(v.loading)-1]; got != step.want {
			t.Errorf("step %d: view got loading state %v, want %v", i, got, step.want)
		}
	}
}

func TestScheduler_FlushesAtEndOfTurn(t *testing.T) {
	loop := sched.New()
	p, v := setup(t, Config[int]{PageSize: 5, Scheduler: loop})
	loop.Post(func() {
		p.SetRowCount(5, true)
		p.SetRowData(0, seq(0, 5))
		p.SetKeyboardSelectedRow(2, false, false)
		if len(v.calls) != 0 {
			t.Errorf("view written during the turn: %v", v.calls)
		}
	})
	loop.Drain()
	if p.HasPendingState() {
		t.Errorf("pending state after the turn")
	}
	checkCalls(t, v, "all:"+markup(0, 1, 2, 3, 4), "focus")
	if got := p.KeyboardSelectedRow(); got != 2 {
		t.Errorf("KeyboardSelectedRow() = %d, want 2", got)
	}
}

func TestGettersReadPendingState(t *testing.T) {
	p, _ := setupLoaded(t, 10, 10)
	mustOK(t, p.SetVisibleRange(Range{0, 20}))
	mustOK(t, p.SetRowCount(50, false))
	if r := p.VisibleRange(); r != (Range{0, 20}) {
		t.Errorf("VisibleRange() = %v, want pending [0, 20)", r)
	}
	if p.RowCount() != 50 || p.IsRowCountExact() {
		t.Errorf("row count %d %v, want pending 50 false", p.RowCount(), p.IsRowCountExact())
	}
}

func TestRefresh(t *testing.T) {
	p, _ := setupLoaded(t, 10, 10)
	var got []Range
	remove := p.OnRangeChange(func(r Range) { got = append(got, r) })
	p.Refresh()
	remove()
	p.Refresh()
	if diff := cmp.Diff([]Range{{0, 10}}, got); diff != "" {
		t.Errorf("range events (-want +got):\n%s", diff)
	}
}

func TestVisibleItems_SkipsPlaceholders(t *testing.T) {
	p, _ := setup(t, Config[int]{PageSize: 10})
	mustOK(t, p.SetRowData(2, []int{2, 3}))
	if diff := cmp.Diff([]int{2, 3}, p.VisibleItems()); diff != "" {
		t.Errorf("visible items (-want +got):\n%s", diff)
	}
}
