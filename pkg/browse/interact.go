package browse

import (
	"context"
	"errors"
	"io"
	"os"

	xterm "golang.org/x/term"

	"src.cellview.dev/pkg/config"
	"src.cellview.dev/pkg/datasource"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/prog"
	"src.cellview.dev/pkg/sched"
	"src.cellview.dev/pkg/store"
	"src.cellview.dev/pkg/sys"
	"src.cellview.dev/pkg/term"
	"src.cellview.dev/pkg/termview"
)

// Program is the interactive browser. It always runs, so it should be the
// last of the subprograms.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed")
	}
	if !sys.IsATTY(fds[0].Fd()) || !sys.IsATTY(fds[1].Fd()) {
		return errors.New("stdin and stdout must be terminals; use -dump to print rows")
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if cfg.Platform != "terminal" {
		return prog.BadUsage("the interactive browser needs the terminal platform; use -dump with " + cfg.Platform)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src, closer, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	state, err := xterm.MakeRaw(int(fds[0].Fd()))
	if err != nil {
		return err
	}
	defer xterm.Restore(int(fds[0].Fd()), state)
	resize, stopResize := sys.NotifyResize()
	defer stopResize()

	return interact(ctx, terminal{
		in: fds[0], out: fds[1], resize: resize,
		size: func() (int, int) { return sys.WinSize(fds[1]) },
	}, cfg, src)
}

// The terminal the browser runs on.
type terminal struct {
	in   io.Reader
	out  io.Writer
	size func() (height, width int)
	// Receives when the size changes. May be nil.
	resize <-chan os.Signal
}

// Posts functions to a loop, redrawing the terminal after each of them.
type renderingPoster struct {
	loop   *sched.Loop
	render func()
}

func (p renderingPoster) Post(f func()) {
	p.loop.Post(func() {
		f()
		p.loop.Defer(p.render)
	})
}

// Returns the page size that fits in a terminal of the given height, leaving
// room for the message and status lines.
func fitPageSize(pageSize, height int) int {
	if height <= 2 {
		return pageSize
	}
	return min(pageSize, height-2)
}

// Runs the browser until the user quits, the input ends or ctx is done.
func interact(ctx context.Context, t terminal, cfg *config.Config, src datasource.Fetcher[store.Row]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := sched.New()
	var err error
	fail := func(e error) {
		if err == nil {
			err = e
		}
		cancel()
	}

	height, width := t.size()
	pcfg := config.PresenterConfig[store.Row](cfg)
	pcfg.PageSize = fitPageSize(pcfg.PageSize, height)
	pcfg.Keys = store.Row.Key
	pcfg.Scheduler = loop
	pcfg.OnError = fail
	styles := termview.Styles{
		Selected: cfg.Styles.Selected.Styling,
		Keyboard: cfg.Styles.Keyboard.Styling,
		Status:   cfg.Styles.Status.Styling,
	}
	l := termview.NewList(formatRow, styles, platform.Terminal{}, pcfg)
	defer l.Close()
	if e := l.P.SetSelectionModel(config.SelectionModel(cfg, pcfg.Keys)); e != nil {
		return e
	}

	w := term.NewWriter(t.out)
	render := func() {
		if e := w.UpdateBuffer(l.Buffer(width), false); e != nil {
			fail(e)
		}
	}
	poster := renderingPoster{loop, render}

	ap := datasource.NewAsyncProvider[store.Row](src, poster)
	defer ap.Close()
	ap.OnError = func(e error) {
		logger.Println("fetching rows:", e)
		l.LoadingText = "error: " + e.Error()
	}
	ap.AddDisplay(l.P)
	loop.Defer(render)

	handleKey := func(k term.Key) {
		ev := platform.KeyEvent(k.String())
		if cmd, ok := l.Adapter().Command(ev); ok && cmd == platform.Quit {
			cancel()
			return
		}
		if _, e := l.Handle(ev); e != nil {
			fail(e)
		}
	}
	go readKeys(t.in, poster, handleKey, func(e error) {
		if e != nil {
			fail(e)
		}
		cancel()
	})
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.resize:
				poster.Post(func() {
					height, width = t.size()
					if e := l.Pager.SetPageSize(fitPageSize(cfg.PageSize, height)); e != nil {
						fail(e)
					}
				})
			}
		}
	}()

	loop.Run(ctx)
	// Erase the list.
	w.UpdateBuffer(&term.Buffer{Width: width}, true)
	return err
}

// Reads keys until the input fails, posting handle for each of them. When
// the input ends, done is posted with nil; when it fails, with the error.
func readKeys(r io.Reader, poster datasource.Poster, handle func(term.Key), done func(error)) {
	kr := term.NewReader(r)
	for {
		k, err := kr.ReadKey()
		if errors.Is(err, term.ErrUnrecognized) {
			logger.Println(err)
			continue
		} else if err != nil {
			if err == io.EOF {
				err = nil
			}
			poster.Post(func() { done(err) })
			return
		}
		poster.Post(func() { handle(k) })
	}
}
