package pager

import (
	"testing"

	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/selection"
	. "src.cellview.dev/pkg/tt"
)

type nopView struct{}

func (nopView) Render([]presenter.Slot[int], int, selection.Model[int]) string { return "" }
func (nopView) ReplaceAllChildren([]presenter.Slot[int], string, bool) {}
func (nopView) ReplaceChildren([]presenter.Slot[int], int, string, bool) {}
func (nopView) SetKeyboardSelected(int, bool, bool) {}
func (nopView) SetLoadingState(presenter.LoadingState) {}
func (nopView) ResetFocus() {}

func setup(t *testing.T, pageSize, rowCount int, exact bool) (*Pager, *presenter.Presenter[int]) {
	t.Helper()
	d := presenter.New[int](nopView{}, presenter.Config[int]{PageSize: pageSize})
	if err := d.SetRowCount(rowCount, exact); err != nil {
		t.Fatal(err)
	}
	return New(d), d
}

func TestPager_Navigation(t *testing.T) {
	p, d := setup(t, 10, 42, true)
	changes := 0
	p.OnChange = func() { changes++ }

	steps := []struct {
		name      string
		f         func() error
		wantStart int
	}{
		{"NextPage", p.NextPage, 10},
		{"NextPage", p.NextPage, 20},
		{"LastPage", p.LastPage, 32},
		{"NextPage at end", p.NextPage, 32},
		{"PreviousPage", p.PreviousPage, 22},
		{"FirstPage", p.FirstPage, 0},
		{"PreviousPage at start", p.PreviousPage, 0},
		{"LastPageStart", p.LastPageStart, 32},
		{"SetPage(2)", func() error { return p.SetPage(2) }, 20},
		{"SetPage(7)", func() error { return p.SetPage(7) }, 20},
	}
	for _, step := range steps {
		if err := step.f(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if got := d.VisibleRange().Start; got != step.wantStart {
			t.Errorf("after %s: page start %d, want %d", step.name, got, step.wantStart)
		}
	}
	if changes == 0 {
		t.Errorf("OnChange never called")
	}
}

func TestPager_NotRangeLimited(t *testing.T) {
	p, d := setup(t, 10, 42, true)
	p.SetRangeLimited(false)
	if err := p.SetPage(7); err != nil {
		t.Fatal(err)
	}
	if got := d.VisibleRange().Start; got != 70 {
		t.Errorf("page start %d, want 70", got)
	}
}

func TestPager_Queries(t *testing.T) {
	p, _ := setup(t, 10, 42, true)
	if err := p.SetPageStart(15); err != nil {
		t.Fatal(err)
	}
	if got := p.Page(); got != 2 {
		t.Errorf("Page() = %d, want 2", got)
	}
	if got := p.PageCount(); got != 5 {
		t.Errorf("PageCount() = %d, want 5", got)
	}
	if !p.HasNextPage() || !p.HasNextPages(2) || p.HasNextPages(3) {
		t.Errorf("HasNextPages wrong at start 15 of 42")
	}
	if !p.HasPreviousPage() || !p.HasPreviousPages(2) || p.HasPreviousPages(3) {
		t.Errorf("HasPreviousPages wrong at start 15")
	}
	if err := p.SetPageSize(20); err != nil {
		t.Fatal(err)
	}
	if got := p.PageSize(); got != 20 {
		t.Errorf("PageSize() = %d, want 20", got)
	}
}

func TestPager_EstimatedCountHasNext(t *testing.T) {
	p, _ := setup(t, 10, 10, false)
	if !p.HasNextPage() {
		t.Errorf("HasNextPage() = false with an estimated row count")
	}
}

func TestPager_Summary(t *testing.T) {
	p, d := setup(t, 10, 42, true)
	if got := p.Summary(); got != "1-10 of 42" {
		t.Errorf("Summary() = %q", got)
	}
	if err := p.LastPageStart(); err != nil {
		t.Fatal(err)
	}
	if got := p.Summary(); got != "33-42 of 42" {
		t.Errorf("Summary() = %q", got)
	}
	if err := d.SetRowCount(12345, false); err != nil {
		t.Fatal(err)
	}
	if got := p.Summary(); got != "33-42 of over 12,345" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestGroup(t *testing.T) {
	Test(t, Fn("group", group), Table{
		Args(0).Rets("0"),
		Args(999).Rets("999"),
		Args(1000).Rets("1,000"),
		Args(1234567).Rets("1,234,567"),
		Args(-4200).Rets("-4,200"),
	})
}
