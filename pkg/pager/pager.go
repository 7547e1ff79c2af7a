// Package pager implements page-wise navigation over a display's visible
// range.
package pager

import (
	"fmt"

	"src.cellview.dev/pkg/presenter"
)

// Display is the part of a presenter a Pager drives. *presenter.Presenter
// implements it.
type Display interface {
	VisibleRange() presenter.Range
	RowCount() int
	IsRowCountExact() bool
	SetVisibleRange(r presenter.Range) error
	OnRangeChange(f func(presenter.Range)) func()
	OnRowCountChange(f func(count int, exact bool)) func()
}

// Pager moves the visible range of a Display by pages.
type Pager struct {
	display      Display
	rangeLimited bool
	remove       []func()
	// Called after the range or row count of the display changes.
	OnChange func()
}

// New creates a Pager for the display, with range limiting enabled.
func New(d Display) *Pager {
	p := &Pager{display: d, rangeLimited: true}
	changed := func() {
		if p.OnChange != nil {
			p.OnChange()
		}
	}
	p.remove = append(p.remove,
		d.OnRangeChange(func(presenter.Range) { changed() }),
		d.OnRowCountChange(func(int, bool) { changed() }))
	return p
}

// Close stops observing the display.
func (p *Pager) Close() {
	for _, f := range p.remove {
		f()
	}
	p.remove = nil
}

// SetRangeLimited sets whether the last page is kept full when the row count
// is exact, so that paging never moves past the data.
func (p *Pager) SetRangeLimited(b bool) { p.rangeLimited = b }

// IsRangeLimited returns whether range limiting is enabled.
func (p *Pager) IsRangeLimited() bool { return p.rangeLimited }

// PageSize returns the length of the visible range.
func (p *Pager) PageSize() int { return p.display.VisibleRange().Length }

// PageStart returns the start of the visible range.
func (p *Pager) PageStart() int { return p.display.VisibleRange().Start }

// Page returns the index of the current page, counting a partial page
// before it as a page. It is 0 if the page size is 0.
func (p *Pager) Page() int {
	r := p.display.VisibleRange()
	if r.Length == 0 {
		return 0
	}
	return (r.Start + r.Length - 1) / r.Length
}

// PageCount returns the number of pages needed to show all rows.
func (p *Pager) PageCount() int {
	size := p.PageSize()
	if size == 0 {
		return 0
	}
	return (p.display.RowCount() + size - 1) / size
}

// HasPage reports whether the page with the given index has rows.
func (p *Pager) HasPage(index int) bool {
	return p.PageSize()*index < p.display.RowCount()
}

// HasNextPage reports whether there are rows after the visible range.
func (p *Pager) HasNextPage() bool { return p.HasNextPages(1) }

// HasNextPages reports whether there are rows n pages ahead.
func (p *Pager) HasNextPages(n int) bool {
	if !p.display.IsRowCountExact() {
		return true
	}
	r := p.display.VisibleRange()
	return r.Start+n*r.Length < p.display.RowCount()
}

// HasPreviousPage reports whether there are rows before the visible range.
func (p *Pager) HasPreviousPage() bool { return p.HasPreviousPages(1) }

// HasPreviousPages reports whether there are rows n pages back.
func (p *Pager) HasPreviousPages(n int) bool {
	r := p.display.VisibleRange()
	return (n-1)*r.Length < r.Start && p.display.RowCount() > 0
}

// NextPage moves the visible range one page forward.
func (p *Pager) NextPage() error {
	r := p.display.VisibleRange()
	return p.SetPageStart(r.Start + r.Length)
}

// PreviousPage moves the visible range one page back.
func (p *Pager) PreviousPage() error {
	r := p.display.VisibleRange()
	return p.SetPageStart(r.Start - r.Length)
}

// FirstPage moves to the first page.
func (p *Pager) FirstPage() error { return p.SetPage(0) }

// LastPage moves to the last page, which starts at a multiple of the page
// size.
func (p *Pager) LastPage() error { return p.SetPage(max(0, p.PageCount()-1)) }

// LastPageStart moves to the page that ends with the last row.
func (p *Pager) LastPageStart() error {
	return p.SetPageStart(p.display.RowCount() - p.PageSize())
}

// SetPage moves to the page with the given index. When range limiting is on
// and the row count is exact, pages without rows are ignored.
func (p *Pager) SetPage(index int) error {
	if p.rangeLimited && p.display.IsRowCountExact() && !p.HasPage(index) {
		return nil
	}
	return p.SetPageStart(index * p.PageSize())
}

// SetPageStart moves the visible range to start at index, clamped to
// [0, max(0, rowCount-pageSize)] when range limiting is on and the row count
// is exact.
func (p *Pager) SetPageStart(index int) error {
	r := p.display.VisibleRange()
	if p.rangeLimited && p.display.IsRowCountExact() {
		index = min(index, p.display.RowCount()-r.Length)
	}
	index = max(0, index)
	if index == r.Start {
		return nil
	}
	return p.display.SetVisibleRange(presenter.Range{Start: index, Length: r.Length})
}

// SetPageSize changes the length of the visible range.
func (p *Pager) SetPageSize(size int) error {
	r := p.display.VisibleRange()
	if size == r.Length {
		return nil
	}
	return p.display.SetVisibleRange(presenter.Range{Start: r.Start, Length: size})
}

// Summary describes the visible range, like "1-10 of 42", or "1-10 of over
// 42" when the row count is an estimate.
func (p *Pager) Summary() string {
	r := p.display.VisibleRange()
	count := p.display.RowCount()
	first := r.Start + 1
	last := max(first, min(count, r.Start+r.Length))
	of := "of"
	if !p.display.IsRowCountExact() {
		of = "of over"
	}
	return fmt.Sprintf("%s-%s %s %s", group(first), group(last), of, group(count))
}

// group formats n with thousands separators.
func group(n int) string {
	if n < 0 {
		return "-" + group(-n)
	}
	s := fmt.Sprint(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
