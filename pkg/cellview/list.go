package cellview

import (
	"strings"

	"golang.org/x/net/html"

	"src.cellview.dev/pkg/cells"
	"src.cellview.dev/pkg/dom"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
	"src.cellview.dev/pkg/selection"
)

// List is a widget showing one cell per row, as div elements.
type List[T any] struct {
	*Widget[T]
	rowsView[T]
	// Elem is the root element of the list, to be attached to the document.
	Elem *html.Node
	cell cells.Cell[T]
}

// NewList creates a List.
func NewList[T any](doc *dom.Document, cell cells.Cell[T], adapter platform.Adapter, cfg presenter.Config[T]) *List[T] {
	l := &List[T]{cell: cell}
	l.Elem = dom.Element("div", "class", "cellview-list")
	rows := dom.Element("div", "class", "cellview-rows")
	message := dom.Element("div", "class", "cellview-message")
	l.Elem.AppendChild(rows)
	l.Elem.AppendChild(message)
	l.Widget = NewWidget[T](l, adapter, cfg)
	l.rowsView.init(l.Widget, doc, l.Elem, rows, message)
	if h, ok := cell.(cells.EventHandler[T]); ok {
		l.cellEvent = func(ev platform.Event, ctx cells.Context, v T) (bool, bool) {
			return h.HandleEvent(ctx, v, ev)
		}
	}
	if r, ok := cell.(cells.Retainer); ok {
		l.retainers = append(l.retainers, r)
	}
	return l
}

// Render renders rows as div elements, each containing one cell.
func (l *List[T]) Render(values []presenter.Slot[T], start int, sel selection.Model[T]) string {
	var sb strings.Builder
	for i, v := range values {
		abs := start + i
		l.writeRowStart(&sb, "div", abs, v, sel)
		if v.Known {
			l.cell.Render(l.context(abs, 0, v.Value, sel), v.Value, &sb)
		}
		sb.WriteString("</div>")
	}
	return sb.String()
}

// Click handles a click on the target node.
func (l *List[T]) Click(target *html.Node) (bool, error) {
	ev := EventAt(platform.Click, target)
	if ev.Row >= 0 {
		ev.Column = 0
	}
	return l.Handle(ev)
}
