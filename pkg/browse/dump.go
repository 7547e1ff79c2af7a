package browse

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"src.cellview.dev/pkg/cells"
	"src.cellview.dev/pkg/cellview"
	"src.cellview.dev/pkg/config"
	"src.cellview.dev/pkg/datasource"
	"src.cellview.dev/pkg/dom"
	"src.cellview.dev/pkg/errutil"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/prog"
	"src.cellview.dev/pkg/sched"
	"src.cellview.dev/pkg/store"
	"src.cellview.dev/pkg/termview"
)

// DumpProgram prints one page of rows and quits. It runs when -dump is
// given. With the terminal platform, rows are printed as text lines followed
// by a status line; with the browser platform, the page is printed as an
// HTML table.
type DumpProgram struct{}

func (DumpProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.Dump {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -dump")
	}
	if f.Start < 0 {
		return prog.BadUsage(fmt.Sprintf("-start must not be negative, got %d", f.Start))
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src, closer, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	return errutil.Multi(dump(fds[1], cfg, src, f.Start), errutil.CloseAll(closer))
}

// A page printed by dump.
type dumpView interface {
	display() *presenter.Presenter[store.Row]
	write(w io.Writer) error
}

func dump(w io.Writer, cfg *config.Config, src datasource.Fetcher[store.Row], start int) error {
	adapter, err := platform.Select(cfg.Platform)
	if err != nil {
		return err
	}
	loop := sched.New()
	var errs []error
	pcfg := config.PresenterConfig[store.Row](cfg)
	pcfg.KeyboardSelection = presenter.KeyboardDisabled
	pcfg.Keys = store.Row.Key
	pcfg.Scheduler = loop
	pcfg.OnError = func(err error) { errs = append(errs, err) }

	var view dumpView
	if adapter.Name() == "browser" {
		view = newTableDump(adapter, pcfg)
	} else {
		view = newTextDump(adapter, pcfg)
	}
	p := view.display()
	defer p.Close()
	if err := p.SetVisibleRange(presenter.Range{Start: start, Length: cfg.PageSize}); err != nil {
		return err
	}

	ap := datasource.NewAsyncProvider(src, loop)
	defer ap.Close()
	ap.OnError = func(err error) { errs = append(errs, err) }
	ap.AddDisplay(p)
	// Pushing rows may request more; stop when a round posts nothing.
	for {
		ap.Wait()
		if loop.Drain() == 0 {
			break
		}
	}

	if err := errutil.Multi(errs...); err != nil {
		return err
	}
	return view.write(w)
}

type textDump struct{ l *termview.List[store.Row] }

func newTextDump(adapter platform.Adapter, pcfg presenter.Config[store.Row]) textDump {
	return textDump{termview.NewList(formatRow, termview.Styles{}, adapter, pcfg)}
}

func (d textDump) display() *presenter.Presenter[store.Row] { return d.l.P }

func (d textDump) write(w io.Writer) error {
	var sb strings.Builder
	for _, line := range d.l.Lines() {
		// Without keyboard selection, every line has a blank marker.
		sb.WriteString(strings.TrimPrefix(line, "  ") + "\n")
	}
	sb.WriteString(d.l.Status() + "\n")
	d.l.Close()
	_, err := io.WriteString(w, sb.String())
	return err
}

type tableDump struct{ t *cellview.Table[store.Row] }

var dumpColumns = []cellview.Column[store.Row]{
	{Header: "#", Cell: cells.NewTextCell(func(r store.Row) string { return strconv.Itoa(r.Seq) })},
	{Header: "Text", Cell: cells.NewTextCell(func(r store.Row) string { return r.Text })},
}

func newTableDump(adapter platform.Adapter, pcfg presenter.Config[store.Row]) tableDump {
	return tableDump{cellview.NewTable(dom.NewDocument(), dumpColumns, adapter, pcfg)}
}

func (d tableDump) display() *presenter.Presenter[store.Row] { return d.t.P }

func (d tableDump) write(w io.Writer) error {
	_, err := io.WriteString(w, dom.Render(d.t.Elem)+"\n")
	return err
}
