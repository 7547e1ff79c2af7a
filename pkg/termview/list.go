// Package termview contains a list widget that shows rows in a terminal.
package termview

import (
	"fmt"
	"strings"

	"src.cellview.dev/pkg/cellview"
	"src.cellview.dev/pkg/logutil"
	"src.cellview.dev/pkg/pager"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/selection"
	"src.cellview.dev/pkg/term"
	"src.cellview.dev/pkg/ui"
)

var logger = logutil.GetLogger("[termview] ")

// Styles are the stylings of a List. Nil stylings change nothing.
type Styles struct {
	Selected ui.Styling
	Keyboard ui.Styling
	Status   ui.Styling
}

// List shows one line per row, followed by a message line while the page is
// loading or empty, and a status line.
type List[T any] struct {
	*cellview.Widget[T]
	// Pager drives the visible range page by page. The status line shows its
	// summary.
	Pager  *pager.Pager
	format func(T) ui.Text
	styles Styles

	sel    selection.Model[T]
	values []presenter.Slot[T]
	lines  []ui.Text
	// Lines produced by the last call to Render, and the markup they were
	// rendered to.
	rendered       []ui.Text
	renderedMarkup string
	loading        presenter.LoadingState
	dot            int

	EmptyText   string
	LoadingText string
}

// NewList creates a List. The format function renders a value to one line.
func NewList[T any](format func(T) ui.Text, styles Styles, adapter platform.Adapter, cfg presenter.Config[T]) *List[T] {
	l := &List[T]{
		format: format, styles: styles,
		EmptyText: "(no rows)", LoadingText: "loading...",
	}
	l.Widget = cellview.NewWidget[T](l, adapter, cfg)
	l.Pager = pager.New(l.P)
	return l
}

// Close stops the pager from observing the presenter.
func (l *List[T]) Close() { l.Pager.Close() }

func (l *List[T]) isKeyboardRow(rel int) bool {
	return l.P.KeyboardSelectionPolicy() != presenter.KeyboardDisabled &&
		rel == l.P.KeyboardSelectedRow()
}

func (l *List[T]) line(v presenter.Slot[T], kb bool) ui.Text {
	marker := "  "
	if kb {
		marker = "> "
	}
	if !v.Known {
		return ui.T(marker+"...", ui.Dim)
	}
	t := ui.T(marker).Concat(l.format(v.Value))
	if l.sel != nil && l.sel.IsSelected(v.Value) {
		t = ui.StyleText(t, l.styles.Selected)
	}
	if kb {
		t = ui.StyleText(t, l.styles.Keyboard)
	}
	return t
}

// Render renders each row to one line of text. The markup is the lines as
// VT strings, joined by newlines.
func (l *List[T]) Render(values []presenter.Slot[T], start int, sel selection.Model[T]) string {
	l.sel = sel
	pageStart := l.P.VisibleRange().Start
	l.rendered = make([]ui.Text, len(values))
	vt := make([]string, len(values))
	for i, v := range values {
		l.rendered[i] = l.line(v, l.isKeyboardRow(start+i-pageStart))
		vt[i] = l.rendered[i].VTString()
	}
	l.renderedMarkup = strings.Join(vt, "\n")
	return l.renderedMarkup
}

// take returns the lines of markup, reusing the result of the last Render.
func (l *List[T]) take(markup string, n int) []ui.Text {
	if markup == l.renderedMarkup && len(l.rendered) == n {
		return l.rendered
	}
	logger.Println("markup not from the last Render; showing it unstyled")
	lines := make([]ui.Text, n)
	for i, s := range strings.SplitN(markup, "\n", n) {
		lines[i] = ui.T(s)
	}
	return lines
}

func (l *List[T]) ReplaceAllChildren(values []presenter.Slot[T], markup string, stealFocus bool) {
	l.values = append(l.values[:0], values...)
	l.lines = append(l.lines[:0], l.take(markup, len(values))...)
	if stealFocus {
		l.dot = l.P.KeyboardSelectedRow()
	}
}

func (l *List[T]) ReplaceChildren(values []presenter.Slot[T], start int, markup string, stealFocus bool) {
	lines := l.take(markup, len(values))
	for i, v := range values {
		if start+i < len(l.values) {
			l.values[start+i], l.lines[start+i] = v, lines[i]
		} else {
			l.values = append(l.values, v)
			l.lines = append(l.lines, lines[i])
		}
	}
	if stealFocus {
		l.dot = l.P.KeyboardSelectedRow()
	}
}

func (l *List[T]) SetKeyboardSelected(index int, selected, stealFocus bool) {
	if index < 0 || index >= len(l.values) {
		return
	}
	l.lines[index] = l.line(l.values[index], selected)
	if selected && stealFocus {
		l.dot = index
	}
}

func (l *List[T]) SetLoadingState(state presenter.LoadingState) { l.loading = state }

// ResetFocus moves the cursor to the keyboard-selected row. A terminal has
// one focus, so the cursor always follows.
func (l *List[T]) ResetFocus() { l.dot = l.P.KeyboardSelectedRow() }

// Lines returns the plain text of the row lines.
func (l *List[T]) Lines() []string {
	lines := make([]string, len(l.lines))
	for i, line := range l.lines {
		lines[i] = line.Plain()
	}
	return lines
}

// Status returns the text of the status line.
func (l *List[T]) Status() string {
	return fmt.Sprintf("%s  page %d/%d", l.Pager.Summary(), l.Pager.Page()+1, max(1, l.Pager.PageCount()))
}

// Buffer renders the list to a buffer of the given width. The dot is on the
// line of the keyboard-selected row.
func (l *List[T]) Buffer(width int) *term.Buffer {
	buf := &term.Buffer{Width: width}
	for _, line := range l.lines {
		buf.Lines = append(buf.Lines, term.Line(line, width))
	}
	switch l.loading {
	case presenter.Empty:
		buf.Lines = append(buf.Lines, term.Line(ui.T(l.EmptyText, ui.Dim), width))
	case presenter.Loading:
		buf.Lines = append(buf.Lines, term.Line(ui.T(l.LoadingText, ui.Dim), width))
	}
	buf.Lines = append(buf.Lines, term.Line(ui.T(l.Status(), l.styles.Status), width))
	buf.Dot = term.Pos{Line: min(l.dot, max(0, len(l.lines)-1))}
	return buf
}
