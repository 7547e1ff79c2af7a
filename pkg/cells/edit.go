package cells

import (
	"strings"

	"golang.org/x/net/html"

	"src.cellview.dev/pkg/platform"
)

// EditTextCell renders a text that turns into an input box when clicked.
// The text being edited is kept as view data until it is committed with
// Enter or discarded with Escape.
type EditTextCell[T any] struct {
	Text func(T) string
	// Called with the edited text when an edit is committed.
	OnCommit func(value T, text string)
	drafts   *ViewData[string]
}

// NewEditTextCell creates an EditTextCell.
func NewEditTextCell[T any](text func(T) string, onCommit func(T, string)) *EditTextCell[T] {
	return &EditTextCell[T]{Text: text, OnCommit: onCommit, drafts: NewViewData[string]()}
}

// Draft returns the text being edited for the row with the key.
func (c *EditTextCell[T]) Draft(key any) (string, bool) { return c.drafts.Get(key) }

// Retain drops the drafts of rows whose keys are not in keys.
func (c *EditTextCell[T]) Retain(keys []any) { c.drafts.Retain(keys) }

func (c *EditTextCell[T]) Render(ctx Context, value T, sb *strings.Builder) {
	if draft, ok := c.drafts.Get(ctx.Key); ok {
		sb.WriteString(`<input type="text" value="`)
		sb.WriteString(html.EscapeString(draft))
		sb.WriteString(`"/>`)
		return
	}
	sb.WriteString(html.EscapeString(c.Text(value)))
}

func (c *EditTextCell[T]) HandleEvent(ctx Context, value T, ev platform.Event) (bool, bool) {
	_, editing := c.drafts.Get(ctx.Key)
	switch {
	case !editing && (ev.Type == platform.Click || ev.Type == platform.KeyDown && ev.Key == "Enter"):
		c.drafts.Set(ctx.Key, c.Text(value))
		return true, true
	case editing && ev.Type == platform.Input:
		c.drafts.Set(ctx.Key, ev.Value)
		// The input element already shows the new value.
		return true, false
	case editing && ev.Type == platform.KeyDown && ev.Key == "Enter":
		draft, _ := c.drafts.Get(ctx.Key)
		c.drafts.Delete(ctx.Key)
		if c.OnCommit != nil {
			c.OnCommit(value, draft)
		}
		return true, true
	case editing && ev.Type == platform.KeyDown && (ev.Key == "Escape" || ev.Key == "Esc"):
		c.drafts.Delete(ctx.Key)
		return true, true
	case editing && ev.Type == platform.KeyDown:
		// Keys typed into the input box are not commands.
		return true, false
	}
	return false, false
}
