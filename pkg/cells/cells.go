// Package cells contains renderers for the cells of list and table rows.
package cells

import (
	"strings"

	"golang.org/x/net/html"

	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/selection"
)

// Context describes the row a cell is rendered for.
type Context struct {
	// Absolute row index.
	Index  int
	Column int
	Key    any
	// Whether the row is selected in the selection model.
	Selected bool
}

// Cell renders a value to HTML.
type Cell[T any] interface {
	Render(ctx Context, value T, sb *strings.Builder)
}

// EventHandler is implemented by cells that handle events targeted at them.
type EventHandler[T any] interface {
	// HandleEvent handles an event. It returns whether the event was
	// consumed, and whether the row needs to be rendered again.
	HandleEvent(ctx Context, value T, ev platform.Event) (consumed, rerender bool)
}

// TextCell renders a value as escaped text.
type TextCell[T any] struct {
	Text func(T) string
}

// NewTextCell creates a TextCell.
func NewTextCell[T any](text func(T) string) TextCell[T] { return TextCell[T]{text} }

func (c TextCell[T]) Render(_ Context, value T, sb *strings.Builder) {
	sb.WriteString(html.EscapeString(c.Text(value)))
}

// CheckboxCell renders a checkbox that reflects and toggles the selection of
// the row.
type CheckboxCell[T any] struct {
	Selection selection.Model[T]
}

func (c CheckboxCell[T]) Render(ctx Context, _ T, sb *strings.Builder) {
	sb.WriteString(`<input type="checkbox" tabindex="-1"`)
	if ctx.Selected {
		sb.WriteString(` checked=""`)
	}
	sb.WriteString(`/>`)
}

func (c CheckboxCell[T]) HandleEvent(ctx Context, value T, ev platform.Event) (bool, bool) {
	if ev.Type != platform.Click || c.Selection == nil {
		return false, false
	}
	c.Selection.SetSelected(value, !c.Selection.IsSelected(value))
	return true, false
}
