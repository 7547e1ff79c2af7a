// Package dom provides a minimal HTML document built on golang.org/x/net/html
// nodes: fragment parsing, rendering, attribute and class helpers, and focus
// tracking.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a tree of nodes rooted at a body element, plus the element
// that has input focus.
type Document struct {
	Body    *html.Node
	focused *html.Node
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{Body: Element("body")}
}

// Element creates an element with the given tag and attributes, given as
// alternating keys and values.
func Element(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		SetAttr(n, attrs[i], attrs[i+1])
	}
	return n
}

// ParseFragment parses markup in the context of the given element, which
// determines what elements are valid (rows of a table need a tbody context).
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

// Render renders a node and its descendants.
func Render(n *html.Node) string {
	var sb strings.Builder
	// Rendering to a strings.Builder does not fail.
	_ = html.Render(&sb, n)
	return sb.String()
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// Text returns the text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// SetChildren removes all children of parent and appends nodes.
func SetChildren(parent *html.Node, nodes []*html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

// ReplaceChildren replaces count element children of parent, starting at the
// element child with the given index, with nodes. Children missing at the end
// are not an error; the nodes are then appended.
func ReplaceChildren(parent *html.Node, start, count int, nodes []*html.Node) error {
	children := Children(parent)
	if start < 0 || count < 0 || start > len(children) {
		return fmt.Errorf("replace children [%d, %d) of %d", start, start+count, len(children))
	}
	count = min(count, len(children)-start)
	var before *html.Node
	if start+count < len(children) {
		before = children[start+count]
	}
	for _, c := range children[start : start+count] {
		parent.RemoveChild(c)
	}
	for _, n := range nodes {
		parent.InsertBefore(n, before)
	}
	return nil
}

// Attr returns the value of an attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes an attribute.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i:i], n.Attr[i+1:]...)
			return
		}
	}
}

// HasClass reports whether n has the class.
func HasClass(n *html.Node, class string) bool {
	classes, _ := Attr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// SetClass adds the class to n if on is true, or removes it otherwise.
func SetClass(n *html.Node, class string, on bool) {
	classes, _ := Attr(n, "class")
	fields := strings.Fields(classes)
	kept := fields[:0]
	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}
	if on {
		kept = append(kept, class)
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// Closest returns the nearest of n and its ancestors for which pred is true.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether n is ancestor or n itself.
func Contains(ancestor, n *html.Node) bool {
	return Closest(n, func(m *html.Node) bool { return m == ancestor }) != nil
}

// Focus moves input focus to n.
func (d *Document) Focus(n *html.Node) { d.focused = n }

// Blur removes input focus.
func (d *Document) Blur() { d.focused = nil }

// Focused returns the element with input focus, or nil. An element that has
// been removed from the document loses focus.
func (d *Document) Focused() *html.Node {
	if d.focused != nil && !Contains(d.Body, d.focused) {
		d.focused = nil
	}
	return d.focused
}

// HasFocusWithin reports whether n or one of its descendants has focus.
func (d *Document) HasFocusWithin(n *html.Node) bool {
	f := d.Focused()
	return f != nil && Contains(n, f)
}
