package presenter

import "src.cellview.dev/pkg/selection"

// Defaults used for the zero values of Config fields.
const (
	DefaultPageSize        = 15
	DefaultPageIncrement   = 30
	DefaultRedrawMinimum   = 5
	DefaultRedrawThreshold = 0.3
	DefaultMaxResolveLoops = 10
)

// Config configures a Presenter. The zero value is usable.
type Config[T any] struct {
	// Initial page size.
	PageSize          int
	KeyboardSelection KeyboardSelectionPolicy
	KeyboardPaging    KeyboardPagingPolicy
	// Number of rows added to the range when keyboard paging past its end
	// under IncreaseRange.
	PageIncrement int
	// A resolution pass redraws everything instead of patching when at least
	// RedrawMinimum rows changed and they make up more than RedrawThreshold
	// of the rows cached before the pass.
	RedrawMinimum   int
	RedrawThreshold float64
	// Number of resolution passes after which Flush gives up with
	// ErrInfiniteLoop.
	MaxResolveLoops int
	// Keys maps row values to the keys used to recognize the
	// keyboard-selected value after the data changes. Defaults to the value
	// itself.
	Keys selection.KeyFunc[T]
	// Scheduler is used to run the resolution pass at the end of the turn in
	// which the state is first mutated. If nil, state is only resolved when
	// Flush is called.
	Scheduler Scheduler
	// OnError is called with errors from scheduled resolution passes. It
	// defaults to panicking.
	OnError func(error)
}

func (cfg Config[T]) withDefaults() Config[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PageIncrement <= 0 {
		cfg.PageIncrement = DefaultPageIncrement
	}
	if cfg.RedrawMinimum <= 0 {
		cfg.RedrawMinimum = DefaultRedrawMinimum
	}
	if cfg.RedrawThreshold <= 0 {
		cfg.RedrawThreshold = DefaultRedrawThreshold
	}
	if cfg.MaxResolveLoops <= 0 {
		cfg.MaxResolveLoops = DefaultMaxResolveLoops
	}
	if cfg.Keys == nil {
		cfg.Keys = selection.Identity[T]
	}
	if cfg.OnError == nil {
		cfg.OnError = func(err error) { panic(err) }
	}
	return cfg
}
