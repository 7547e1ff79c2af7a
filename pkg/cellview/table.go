package cellview

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"src.cellview.dev/pkg/cells"
	"src.cellview.dev/pkg/dom"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/selection"
)

// Column is a column of a Table.
type Column[T any] struct {
	Header string
	Cell   cells.Cell[T]
}

// Table is a widget showing rows as table rows, with one cell per column.
type Table[T any] struct {
	*Widget[T]
	rowsView[T]
	// Elem is the table element, to be attached to the document.
	Elem    *html.Node
	columns []Column[T]
}

// NewTable creates a Table with a header row.
func NewTable[T any](doc *dom.Document, columns []Column[T], adapter platform.Adapter, cfg presenter.Config[T]) *Table[T] {
	t := &Table[T]{columns: columns}
	t.Elem = dom.Element("table", "class", "cellview-table")
	thead := dom.Element("thead")
	header := dom.Element("tr")
	for i, c := range columns {
		th := dom.Element("th", "data-column", fmt.Sprint(i))
		th.AppendChild(&html.Node{Type: html.TextNode, Data: c.Header})
		header.AppendChild(th)
	}
	thead.AppendChild(header)
	tbody := dom.Element("tbody")
	caption := dom.Element("caption", "class", "cellview-message")
	t.Elem.AppendChild(caption)
	t.Elem.AppendChild(thead)
	t.Elem.AppendChild(tbody)

	t.Widget = NewWidget[T](t, adapter, cfg)
	t.rowsView.init(t.Widget, doc, t.Elem, tbody, caption)
	for _, c := range columns {
		if r, ok := c.Cell.(cells.Retainer); ok {
			t.retainers = append(t.retainers, r)
		}
	}
	t.cellEvent = t.handleCellEvent
	return t
}

func (t *Table[T]) handleCellEvent(ev platform.Event, ctx cells.Context, v T) (bool, bool) {
	if ev.Column >= len(t.columns) {
		return false, false
	}
	if h, ok := t.columns[ev.Column].Cell.(cells.EventHandler[T]); ok {
		return h.HandleEvent(ctx, v, ev)
	}
	return false, false
}

// Render renders rows as tr elements.
func (t *Table[T]) Render(values []presenter.Slot[T], start int, sel selection.Model[T]) string {
	var sb strings.Builder
	for i, v := range values {
		abs := start + i
		t.writeRowStart(&sb, "tr", abs, v, sel)
		for j, c := range t.columns {
			fmt.Fprintf(&sb, `<td data-column="%d">`, j)
			if v.Known {
				c.Cell.Render(t.context(abs, j, v.Value, sel), v.Value, &sb)
			}
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	return sb.String()
}

// Click handles a click on the target node.
func (t *Table[T]) Click(target *html.Node) (bool, error) {
	return t.Handle(EventAt(platform.Click, target))
}
