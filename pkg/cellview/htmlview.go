package cellview

import (
	"strconv"

	"golang.org/x/net/html"

	"src.cellview.dev/pkg/cells"
	"src.cellview.dev/pkg/dom"
	"src.cellview.dev/pkg/platform"
	"src.cellview.dev/pkg/presenter"
)

// rowsView implements the DOM writing part of presenter.View for views whose
// rows are the element children of one container.
type rowsView[T any] struct {
	w         *Widget[T]
	doc       *dom.Document
	root      *html.Node
	container *html.Node
	message   *html.Node
	retainers []cells.Retainer
	refocus   bool

	// Texts shown when there are no rows.
	EmptyText   string
	LoadingText string
}

func (v *rowsView[T]) init(w *Widget[T], doc *dom.Document, root, container, message *html.Node) {
	*v = rowsView[T]{
		w: w, doc: doc, root: root, container: container, message: message,
		EmptyText: "No data", LoadingText: "Loading",
	}
}

func (v *rowsView[T]) noteFocus(stealFocus bool) {
	v.refocus = v.refocus || stealFocus || v.w.focused || v.doc.HasFocusWithin(v.root)
}

func (v *rowsView[T]) parse(markup string) []*html.Node {
	nodes, err := dom.ParseFragment(markup, v.container)
	if err != nil {
		logger.Println("discarding rendered rows:", err)
	}
	return nodes
}

func (v *rowsView[T]) ReplaceAllChildren(_ []presenter.Slot[T], markup string, stealFocus bool) {
	v.noteFocus(stealFocus)
	dom.SetChildren(v.container, v.parse(markup))
	v.retain()
}

func (v *rowsView[T]) ReplaceChildren(values []presenter.Slot[T], start int, markup string, stealFocus bool) {
	v.noteFocus(stealFocus)
	if err := dom.ReplaceChildren(v.container, start, len(values), v.parse(markup)); err != nil {
		logger.Println("patching rows:", err)
	}
	v.retain()
}

func (v *rowsView[T]) retain() {
	if len(v.retainers) == 0 {
		return
	}
	keys := v.w.rowKeys()
	for _, r := range v.retainers {
		r.Retain(keys)
	}
}

func (v *rowsView[T]) SetKeyboardSelected(index int, selected, stealFocus bool) {
	n := v.row(index)
	if n == nil || (selected && v.keyboardDisabled()) {
		return
	}
	dom.SetClass(n, KeyboardClass, selected)
	if selected {
		dom.SetAttr(n, "tabindex", "0")
		if stealFocus {
			v.doc.Focus(n)
		}
	} else {
		dom.SetAttr(n, "tabindex", "-1")
	}
}

func (v *rowsView[T]) SetLoadingState(state presenter.LoadingState) {
	dom.SetAttr(v.root, "data-loading", state.String())
	text := ""
	switch state {
	case presenter.Empty:
		text = v.EmptyText
	case presenter.Loading:
		text = v.LoadingText
	}
	dom.SetChildren(v.message, nil)
	if text != "" {
		v.message.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (v *rowsView[T]) ResetFocus() {
	if v.refocus && !v.keyboardDisabled() {
		if n := v.row(v.w.P.KeyboardSelectedRow()); n != nil {
			v.doc.Focus(n)
		}
	}
	v.refocus = false
}

func (v *rowsView[T]) keyboardDisabled() bool {
	return v.w.P.KeyboardSelectionPolicy() == presenter.KeyboardDisabled
}

// row returns the element of the row at the page-relative index.
func (v *rowsView[T]) row(index int) *html.Node {
	children := dom.Children(v.container)
	if index < 0 || index >= len(children) {
		return nil
	}
	return children[index]
}

// Row returns the element of the row at the page-relative index, or nil.
func (v *rowsView[T]) Row(index int) *html.Node { return v.row(index) }

// EventAt returns an event of the given type targeted at the row and column
// containing the target node.
func EventAt(typ platform.EventType, target *html.Node) platform.Event {
	return platform.Event{
		Type:   typ,
		Row:    intAttrOfClosest(target, "data-row"),
		Column: intAttrOfClosest(target, "data-column"),
	}
}

func intAttrOfClosest(n *html.Node, key string) int {
	found := dom.Closest(n, func(m *html.Node) bool {
		_, ok := dom.Attr(m, key)
		return ok
	})
	if found == nil {
		return -1
	}
	s, _ := dom.Attr(found, key)
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return i
}
