// Package datasource contains data sources that push rows to displays when
// their visible range changes.
package datasource

import (
	"context"

	"src.cellview.dev/pkg/logutil"
	"src.cellview.dev/pkg/presenter"
)

var logger = logutil.GetLogger("[datasource] ")

// Display is a consumer of rows. *presenter.Presenter implements it.
type Display[T any] interface {
	VisibleRange() presenter.Range
	SetRowData(start int, values []T) error
	SetRowCount(count int, exact bool) error
	OnRangeChange(f func(presenter.Range)) (remove func())
}

// Page is the result of a fetch.
type Page[T any] struct {
	// Absolute index of the first row.
	Start int
	Rows  []T
	// Row count of the whole dataset, and whether it is exact.
	Count int
	Exact bool
}

// Fetcher fetches rows of a dataset.
type Fetcher[T any] interface {
	// Fetch returns the rows in the range. The returned page may have fewer
	// rows than requested when the range extends past the end of the
	// dataset.
	Fetch(ctx context.Context, r presenter.Range) (Page[T], error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc[T any] func(ctx context.Context, r presenter.Range) (Page[T], error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, r presenter.Range) (Page[T], error) {
	return f(ctx, r)
}

// Push pushes a page to a display.
func Push[T any](d Display[T], p Page[T]) error {
	if err := d.SetRowCount(p.Count, p.Exact); err != nil {
		return err
	}
	return d.SetRowData(p.Start, p.Rows)
}

// Slice returns the page of values covering r.
func Slice[T any](values []T, r presenter.Range) Page[T] {
	start := min(r.Start, len(values))
	end := min(r.End(), len(values))
	return Page[T]{Start: r.Start, Rows: values[start:end:end], Count: len(values), Exact: true}
}
