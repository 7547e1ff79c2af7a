// Package sched implements a cooperative, single-goroutine task loop with
// "end of turn" deferred commands.
//
// A turn is the execution of one posted task. Commands deferred during a turn
// run after the task returns and before the next posted task starts, in the
// order they were deferred; commands deferred by a deferred command run in
// the same turn. This is the only form of asynchrony the widgets in this
// module rely on.
package sched

import (
	"context"
	"sync"

	"src.cellview.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[sched] ")

// Loop is a task loop. The zero value is not usable; use New.
//
// Post may be called from any goroutine. All other methods, as well as the
// tasks themselves, run on the goroutine that calls Run or Drain.
type Loop struct {
	mu     sync.Mutex
	posted []func()
	wake   chan struct{}

	deferred []func()
}

// New creates a new Loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues f to run as its own turn. It is safe to call from any
// goroutine.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.posted = append(l.posted, f)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Defer queues f to run at the end of the current turn. When called outside
// of a turn, f runs at the start of the next Drain or Run, before any posted
// task.
func (l *Loop) Defer(f func()) {
	l.deferred = append(l.deferred, f)
}

// Pending reports whether there are deferred commands that have not run yet.
func (l *Loop) Pending() bool { return len(l.deferred) > 0 }

// RunDeferred runs all deferred commands, including ones deferred while
// running them. It returns the number of commands run.
func (l *Loop) RunDeferred() int {
	n := 0
	for len(l.deferred) > 0 {
		f := l.deferred[0]
		l.deferred[0] = nil
		l.deferred = l.deferred[1:]
		f()
		n++
	}
	return n
}

// Drain runs deferred commands and posted tasks until none is left. It
// returns the number of posted tasks that ran.
func (l *Loop) Drain() int {
	l.RunDeferred()
	turns := 0
	for {
		f, ok := l.next()
		if !ok {
			return turns
		}
		l.turn(f)
		turns++
	}
}

// Run runs turns as tasks get posted, until ctx is done. It returns the
// context's error.
func (l *Loop) Run(ctx context.Context) error {
	l.Drain()
	for {
		select {
		case <-ctx.Done():
			if n := len(l.deferred); n > 0 {
				logger.Printf("stopping with %d deferred commands", n)
			}
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		}
	}
}

func (l *Loop) turn(f func()) {
	f()
	l.RunDeferred()
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.posted) == 0 {
		return nil, false
	}
	f := l.posted[0]
	l.posted[0] = nil
	l.posted = l.posted[1:]
	return f, true
}
