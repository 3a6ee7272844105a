package htmldom

import (
	"strings"

	"github.com/npillmayer/scopedtags/dom"
	"golang.org/x/net/html"
)

// Node wraps an HTML node for the tree transform. A node is seen through the
// document owning its tree.
type Node struct {
	h   *html.Node
	doc *Document
}

var _ dom.Node = Node{}

// HTMLNode returns the underlying HTML node.
func (n Node) HTMLNode() *html.Node {
	return n.h
}

// IsElement is a predicate: is n an element node?
func (n Node) IsElement() bool {
	return n.h != nil && n.h.Type == html.ElementNode
}

// LocalName returns the lower-case name of an element, or "" for other nodes.
func (n Node) LocalName() string {
	if !n.IsElement() {
		return ""
	}
	return strings.ToLower(n.h.Data)
}

// Attributes returns the attributes of an element.
func (n Node) Attributes() []dom.Attr {
	if n.h == nil || len(n.h.Attr) == 0 {
		return nil
	}
	attrs := make([]dom.Attr, len(n.h.Attr))
	for i, a := range n.h.Attr {
		attrs[i] = dom.Attr{Namespace: a.Namespace, Key: a.Key, Value: a.Val}
	}
	return attrs
}

// TextContent returns the text of n and all of its descendents.
func (n Node) TextContent() string {
	if n.h == nil {
		return ""
	}
	if n.h.Type == html.TextNode {
		return n.h.Data
	}
	var b strings.Builder
	collectText(n.h, &b)
	return b.String()
}

func collectText(h *html.Node, b *strings.Builder) {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			collectText(c, b)
		}
	}
}

// ChildNodes returns all children of n, in order.
func (n Node) ChildNodes() []dom.Node {
	if n.h == nil {
		return nil
	}
	var children []dom.Node
	for c := n.h.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, n.doc.wrap(c))
	}
	return children
}

// ParentNode returns the parent of n, or nil.
func (n Node) ParentNode() dom.Node {
	if n.h == nil || n.h.Parent == nil {
		return nil
	}
	return n.doc.wrap(n.h.Parent)
}

// IsUpgraded is a predicate: is the element bound to a handler?
func (n Node) IsUpgraded() bool {
	return n.IsElement() && n.doc.isUpgraded(n.h)
}

// Document returns the document owning the tree of n.
func (n Node) Document() *Document {
	return n.doc
}

func unwrap(n dom.Node) (Node, error) {
	if node, ok := n.(Node); ok && node.h != nil && node.doc != nil {
		return node, nil
	}
	return Node{}, dom.ErrForeignNode
}

// walk calls f for h and all its descendents.
func walk(h *html.Node, f func(*html.Node)) {
	f(h)
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		walk(c, f)
	}
}

func clone(h *html.Node) *html.Node {
	c := &html.Node{
		Type:      h.Type,
		DataAtom:  h.DataAtom,
		Data:      h.Data,
		Namespace: h.Namespace,
	}
	if len(h.Attr) > 0 {
		c.Attr = append([]html.Attribute(nil), h.Attr...)
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(clone(ch))
	}
	return c
}
