package datasource

import (
	"context"
	"sync"

	"src.cellview.dev/pkg/presenter"
)

// Poster runs functions on the goroutine that owns the displays. *sched.Loop
// implements it.
type Poster interface {
	Post(f func())
}

// AsyncProvider fetches the visible range of its displays on background
// goroutines and pushes the results on the goroutine of a Poster. A response
// is dropped if the display has asked for another range in the meantime.
type AsyncProvider[T any] struct {
	fetcher Fetcher[T]
	poster  Poster
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// The fields below are only accessed on the Poster's goroutine.
	displays map[Display[T]]*asyncDisplay
	// Called with fetch errors and errors returned by displays. Defaults to
	// logging them.
	OnError func(error)
}

type asyncDisplay struct {
	remove func()
	// Incremented on every request; a response with an older generation is
	// stale.
	gen    int
	cancel context.CancelFunc
}

// NewAsyncProvider creates an AsyncProvider.
func NewAsyncProvider[T any](fetcher Fetcher[T], poster Poster) *AsyncProvider[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncProvider[T]{
		fetcher: fetcher, poster: poster, ctx: ctx, cancel: cancel,
		displays: make(map[Display[T]]*asyncDisplay),
	}
}

// AddDisplay registers a display and starts fetching its visible range.
func (ap *AsyncProvider[T]) AddDisplay(d Display[T]) {
	if _, ok := ap.displays[d]; ok {
		return
	}
	ad := &asyncDisplay{}
	ap.displays[d] = ad
	ad.remove = d.OnRangeChange(func(r presenter.Range) { ap.request(d, ad, r) })
	ap.request(d, ad, d.VisibleRange())
}

// RemoveDisplay unregisters a display and cancels its pending fetch.
func (ap *AsyncProvider[T]) RemoveDisplay(d Display[T]) {
	if ad, ok := ap.displays[d]; ok {
		ad.remove()
		if ad.cancel != nil {
			ad.cancel()
		}
		delete(ap.displays, d)
	}
}

// Refresh fetches the visible range of every display again.
func (ap *AsyncProvider[T]) Refresh() {
	for d, ad := range ap.displays {
		ap.request(d, ad, d.VisibleRange())
	}
}

// Wait waits for the fetches in flight to finish. Their results have been
// posted when Wait returns.
func (ap *AsyncProvider[T]) Wait() { ap.wg.Wait() }

// Close cancels all fetches and waits for their goroutines to exit.
func (ap *AsyncProvider[T]) Close() {
	ap.cancel()
	ap.wg.Wait()
}

func (ap *AsyncProvider[T]) request(d Display[T], ad *asyncDisplay, r presenter.Range) {
	if ad.cancel != nil {
		ad.cancel()
	}
	ad.gen++
	gen := ad.gen
	ctx, cancel := context.WithCancel(ap.ctx)
	ad.cancel = cancel
	logger.Printf("fetching %v, generation %d", r, gen)

	ap.wg.Add(1)
	go func() {
		defer ap.wg.Done()
		page, err := ap.fetcher.Fetch(ctx, r)
		if ctx.Err() != nil {
			return
		}
		ap.poster.Post(func() {
			if cur, ok := ap.displays[d]; !ok || cur != ad || gen != ad.gen {
				logger.Printf("dropping stale response for %v", r)
				return
			}
			ad.cancel = nil
			cancel()
			if err == nil {
				err = Push(d, page)
			}
			if err != nil {
				ap.error(err)
			}
		})
	}()
}

func (ap *AsyncProvider[T]) error(err error) {
	if ap.OnError != nil {
		ap.OnError(err)
		return
	}
	logger.Println("fetching rows:", err)
}
