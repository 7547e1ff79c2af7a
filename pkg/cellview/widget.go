// Package cellview contains list widgets that combine a presenter with a
// view, and HTML views for lists and tables.
package cellview

import (
	"fmt"
	"strings"

	"src.cellview.dev/pkg/cells"
	"src.cellview.dev/pkg/logutil"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/selection"
)

var logger = logutil.GetLogger("[cellview] ")

// CSS classes of rows.
const (
	RowClass      = "cellview-row"
	EvenClass     = "cellview-even"
	OddClass      = "cellview-odd"
	SelectedClass = "cellview-selected"
	KeyboardClass = "cellview-keyboard"
)

// Widget turns input events into presenter calls. It does not depend on how
// rows are displayed; views embed it.
type Widget[T any] struct {
	// P is the presenter of the widget.
	P       *presenter.Presenter[T]
	adapter platform.Adapter
	keys    selection.KeyFunc[T]
	focused bool
	// Handles events targeted at a cell; nil if the view has no cells with
	// event handlers.
	cellEvent func(ev platform.Event, ctx cells.Context, value T) (consumed, rerender bool)
}

// NewWidget creates a Widget whose presenter pushes changes to view.
func NewWidget[T any](view presenter.View[T], adapter platform.Adapter, cfg presenter.Config[T]) *Widget[T] {
	if cfg.Keys == nil {
		cfg.Keys = selection.Identity[T]
	}
	return &Widget[T]{P: presenter.New(view, cfg), adapter: adapter, keys: cfg.Keys}
}

// Adapter returns the platform adapter of the widget.
func (w *Widget[T]) Adapter() platform.Adapter { return w.adapter }

// Focused reports whether the widget has input focus, as reported by Focus
// and Blur events.
func (w *Widget[T]) Focused() bool { return w.focused }

// SetVisibleRangeStart exists for compatibility with callers that set the
// range start alone. It always fails; use P.SetVisibleRange.
func (w *Widget[T]) SetVisibleRangeStart(int) error {
	return fmt.Errorf("SetVisibleRangeStart: %w", presenter.ErrUnsupported)
}

// Handle handles an input event. It returns whether the event was consumed.
func (w *Widget[T]) Handle(ev platform.Event) (bool, error) {
	switch ev.Type {
	case platform.Focus:
		w.focused = true
		return true, nil
	case platform.Blur:
		w.focused = false
		return true, nil
	}
	if ev.Row >= 0 && ev.Column >= 0 && w.cellEvent != nil {
		slot, err := w.P.VisibleItem(ev.Row - w.P.VisibleRange().Start)
		if err == nil && slot.Known {
			consumed, rerender := w.cellEvent(ev, w.context(ev.Row, ev.Column, slot.Value, w.P.SelectionModel()), slot.Value)
			if rerender {
				// Pushing the row again re-renders it with its new view data.
				if err := w.P.SetRowData(ev.Row, []T{slot.Value}); err != nil {
					return consumed, err
				}
			}
			if consumed {
				return true, w.P.MarkTouched()
			}
		}
	}
	cmd, ok := w.adapter.Command(ev)
	if !ok {
		return false, nil
	}
	return true, w.Do(cmd, ev)
}

// Do carries out a command. The event is used by commands that target a row.
func (w *Widget[T]) Do(cmd platform.Command, ev platform.Event) error {
	p := w.P
	logger.Printf("%v on row %d", cmd, ev.Row)
	switch cmd {
	case platform.Next:
		return p.KeyboardNext()
	case platform.Prev:
		return p.KeyboardPrev()
	case platform.NextPage:
		return p.KeyboardNextPage()
	case platform.PrevPage:
		return p.KeyboardPrevPage()
	case platform.Home:
		return p.KeyboardHome()
	case platform.End:
		return p.KeyboardEnd()
	case platform.ToggleSelection:
		if err := p.MarkTouched(); err != nil {
			return err
		}
		return w.selectKeyboardRow(true)
	case platform.SelectRow:
		rel := ev.Row - p.VisibleRange().Start
		if err := p.SetKeyboardSelectedRow(rel, w.adapter.StealsFocus(ev), false); err != nil {
			return err
		}
		return w.selectKeyboardRow(false)
	}
	return nil
}

// selectKeyboardRow selects, or toggles the selection of, the
// keyboard-selected row. When keyboard selection is bound to the selection
// model, the presenter does it.
func (w *Widget[T]) selectKeyboardRow(toggle bool) error {
	sel := w.P.SelectionModel()
	if sel == nil || w.P.KeyboardSelectionPolicy() == presenter.KeyboardBoundToSelection {
		return nil
	}
	v, err := w.P.VisibleItem(w.P.KeyboardSelectedRow())
	if err != nil || !v.Known {
		return nil
	}
	sel.SetSelected(v.Value, !toggle || !sel.IsSelected(v.Value))
	return nil
}

func (w *Widget[T]) context(abs, column int, v T, sel selection.Model[T]) cells.Context {
	return cells.Context{
		Index:    abs,
		Column:   column,
		Key:      w.keys(v),
		Selected: sel != nil && sel.IsSelected(v),
	}
}

// rowKeys returns the keys of the known cached rows.
func (w *Widget[T]) rowKeys() []any {
	var keys []any
	for _, v := range w.P.VisibleItems() {
		keys = append(keys, w.keys(v))
	}
	return keys
}

// isKeyboardRow reports whether the row at the absolute index is the
// keyboard-selected row.
func (w *Widget[T]) isKeyboardRow(abs int) bool {
	return w.P.KeyboardSelectionPolicy() != presenter.KeyboardDisabled &&
		abs-w.P.VisibleRange().Start == w.P.KeyboardSelectedRow()
}

// writeRowStart writes the start tag of a row element.
func (w *Widget[T]) writeRowStart(sb *strings.Builder, tag string, abs int, v presenter.Slot[T], sel selection.Model[T]) {
	classes := []string{RowClass, EvenClass}
	if abs%2 == 1 {
		classes[1] = OddClass
	}
	if v.Known && sel != nil && sel.IsSelected(v.Value) {
		classes = append(classes, SelectedClass)
	}
	tabIndex := "-1"
	if w.isKeyboardRow(abs) {
		classes = append(classes, KeyboardClass)
		tabIndex = "0"
	}
	fmt.Fprintf(sb, `<%s class="%s" data-row="%d" tabindex="%s">`,
		tag, strings.Join(classes, " "), abs, tabIndex)
}
