package htmldom

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/scopedtags/dom"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document creates and arranges nodes for a single scope.
//
// A document owns the trees it creates or parses and keeps track of their
// upgraded elements. Subtrees inserted into a tree are adopted by the
// document owning the tree.
type Document struct {
	host     *Host
	scope    scope.ID
	mx       sync.RWMutex
	upgraded map[*html.Node]struct{}
}

var _ dom.Document = &Document{}

// Scope returns the scope of the document.
func (doc *Document) Scope() scope.ID {
	return doc.scope
}

// Host returns the host the document belongs to.
func (doc *Document) Host() *Host {
	return doc.host
}

// Wrap wraps an HTML node, which becomes part of a tree owned by doc.
func (doc *Document) Wrap(h *html.Node) Node {
	return doc.wrap(h)
}

func (doc *Document) wrap(h *html.Node) Node {
	return Node{h: h, doc: doc}
}

// --- Upgraded elements -----------------------------------------------------

func (doc *Document) isUpgraded(h *html.Node) bool {
	doc.mx.RLock()
	defer doc.mx.RUnlock()
	_, ok := doc.upgraded[h]
	return ok
}

// upgrade marks h as upgraded if its name has a handler.
func (doc *Document) upgrade(h *html.Node) bool {
	if !doc.host.hasHandler(h) {
		return false
	}
	doc.mx.Lock()
	defer doc.mx.Unlock()
	if _, ok := doc.upgraded[h]; ok {
		return false
	}
	doc.upgraded[h] = struct{}{}
	return true
}

// adopt moves the upgraded state of the subtree at h from document from to doc.
func (doc *Document) adopt(h *html.Node, from *Document) {
	if from == nil || from == doc {
		return
	}
	var marked []*html.Node
	from.mx.Lock()
	walk(h, func(c *html.Node) {
		if _, ok := from.upgraded[c]; ok {
			delete(from.upgraded, c)
			marked = append(marked, c)
		}
	})
	from.mx.Unlock()
	if len(marked) == 0 {
		return
	}
	doc.mx.Lock()
	for _, c := range marked {
		doc.upgraded[c] = struct{}{}
	}
	doc.mx.Unlock()
}

// release forgets the upgraded state of the subtree at h.
func (doc *Document) release(h *html.Node) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	walk(h, func(c *html.Node) {
		delete(doc.upgraded, c)
	})
}

// Upgraded returns the number of upgraded elements the document keeps track of.
func (doc *Document) Upgraded() int {
	doc.mx.RLock()
	defer doc.mx.RUnlock()
	return len(doc.upgraded)
}

// --- Node creation ---------------------------------------------------------

// CreateElement creates a detached element. A custom element name is taken to
// be a logical name and is replaced by the concrete name of the nearest scope
// owning it, as seen from the scope of the document. If the resulting name is
// bound to a handler, the element is upgraded.
func (doc *Document) CreateElement(name string) (dom.Node, error) {
	name = strings.ToLower(name)
	if !isElementName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	h := &html.Node{Type: html.ElementNode}
	concrete := name
	if registry.IsCustomName(name) {
		tr := doc.host.transformer
		logical := doc.host.Registry().LogicalName(name)
		c, err := tr.ConcreteName(logical, doc.scope)
		if err != nil {
			tracer().P("scope", doc.scope).Infof("creating <%s> unscoped: %v", name, err)
		} else if c != name {
			concrete = c
			h.Attr = []html.Attribute{{Key: tr.Marker(), Val: logical}}
		}
	}
	h.Data = concrete
	h.DataAtom = atom.Lookup([]byte(concrete))
	if doc.upgrade(h) {
		tracer().P("scope", doc.scope).Debugf("created upgraded <%s>", concrete)
	}
	return doc.wrap(h), nil
}

// CreateStyle creates a detached style element holding css.
func (doc *Document) CreateStyle(css string) (dom.Node, error) {
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     "style",
		DataAtom: atom.Style,
	}
	h.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	return doc.wrap(h), nil
}

// --- Tree manipulation -----------------------------------------------------

// SetAttribute sets or replaces an attribute of an element.
func (doc *Document) SetAttribute(n dom.Node, key, value string) {
	node, err := unwrap(n)
	if err != nil {
		tracer().Errorf("set attribute: %v", err)
		return
	}
	h := node.h
	for i, a := range h.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			h.Attr[i].Val = value
			return
		}
	}
	h.Attr = append(h.Attr, html.Attribute{Key: key, Val: value})
}

// MoveChildren appends all children of from to to, in order.
func (doc *Document) MoveChildren(from, to dom.Node) error {
	f, err := unwrap(from)
	if err != nil {
		return err
	}
	t, err := unwrap(to)
	if err != nil {
		return err
	}
	for c := f.h.FirstChild; c != nil; c = f.h.FirstChild {
		f.h.RemoveChild(c)
		t.h.AppendChild(c)
		t.doc.adopt(c, f.doc)
	}
	return nil
}

// ReplaceNode puts replacement at the position of old. The document owning
// old adopts replacement. If old is detached, replacement is not inserted.
func (doc *Document) ReplaceNode(old, replacement dom.Node) error {
	o, err := unwrap(old)
	if err != nil {
		return err
	}
	r, err := unwrap(replacement)
	if err != nil {
		return err
	}
	if o.h == r.h {
		return nil
	}
	o.doc.adopt(r.h, r.doc)
	if o.h.Parent == nil {
		return nil
	}
	if r.h.Parent != nil {
		r.h.Parent.RemoveChild(r.h)
	}
	parent := o.h.Parent
	parent.InsertBefore(r.h, o.h)
	parent.RemoveChild(o.h)
	return nil
}

// Transform scopes the subtree at n for the scope of the document and returns
// the node standing in place of n, as seen through the document owning n.
func (doc *Document) Transform(n dom.Node) (dom.Node, error) {
	node, err := unwrap(n)
	if err != nil {
		return n, err
	}
	res, err := doc.host.transformer.Process(node, doc, doc.scope)
	if r, ok := res.(Node); ok && r.h != nil {
		return node.doc.wrap(r.h), err
	}
	return res, err
}

// Upgrade marks every element below and including root as upgraded, if its
// name is bound to a handler. It returns the number of newly upgraded elements.
func (doc *Document) Upgrade(root dom.Node) int {
	node, err := unwrap(root)
	if err != nil {
		return 0
	}
	return node.doc.upgradeTree(node.h)
}

func (doc *Document) upgradeTree(h *html.Node) int {
	cnt := 0
	walk(h, func(c *html.Node) {
		if doc.upgrade(c) {
			cnt++
		}
	})
	return cnt
}

// Parse parses a complete HTML document with logical names and scopes it.
func (doc *Document) Parse(text string) (Node, error) {
	scoped := doc.host.markup.Rewrite(text, doc.scope)
	h, err := html.Parse(strings.NewReader(scoped))
	if err != nil {
		return Node{}, err
	}
	root := doc.wrap(h)
	if _, err = doc.Transform(root); err != nil {
		return root, err
	}
	doc.upgradeTree(h)
	return root, nil
}

// SetInnerHTML replaces the children of el by the nodes parsed from markup.
// Logical names in markup are scoped before and after parsing. The replaced
// children are discarded together with their upgraded state.
func (doc *Document) SetInnerHTML(el dom.Node, markup string) error {
	node, err := unwrap(el)
	if err != nil {
		return err
	}
	h := node.h
	if h.Type != html.ElementNode {
		return ErrNotElement
	}
	scoped := doc.host.markup.Rewrite(markup, doc.scope)
	nodes, err := html.ParseFragment(strings.NewReader(scoped), h)
	if err != nil {
		return err
	}
	for c := h.FirstChild; c != nil; c = h.FirstChild {
		h.RemoveChild(c)
		node.doc.release(c)
	}
	for _, n := range nodes {
		h.AppendChild(n)
	}
	for _, n := range nodes {
		if _, err = doc.Transform(node.doc.wrap(n)); err != nil {
			return err
		}
	}
	node.doc.upgradeTree(h)
	return nil
}

// --- Serialization ---------------------------------------------------------

// InnerHTML renders the children of n with concrete names.
func (doc *Document) InnerHTML(n dom.Node) (string, error) {
	node, err := unwrap(n)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for c := node.h.FirstChild; c != nil; c = c.NextSibling {
		if err = html.Render(&buf, c); err != nil {
			return buf.String(), err
		}
	}
	return buf.String(), nil
}

// OuterHTML renders n with concrete names.
func (doc *Document) OuterHTML(n dom.Node) (string, error) {
	node, err := unwrap(n)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = html.Render(&buf, node.h)
	return buf.String(), err
}

// RestoreInnerHTML renders the children of n with logical names.
func (doc *Document) RestoreInnerHTML(n dom.Node) (string, error) {
	text, err := doc.InnerHTML(n)
	return doc.host.markup.Restore(text), err
}

// RestoreOuterHTML renders n with logical names.
func (doc *Document) RestoreOuterHTML(n dom.Node) (string, error) {
	text, err := doc.OuterHTML(n)
	return doc.host.markup.Restore(text), err
}

// TagName returns the upper-case logical name of an element.
func (doc *Document) TagName(n dom.Node) string {
	if n == nil || !n.IsElement() {
		return ""
	}
	if logical, ok := dom.Attribute(n, doc.host.markup.Marker()); ok && logical != "" {
		return strings.ToUpper(logical)
	}
	return strings.ToUpper(doc.host.Registry().LogicalName(n.LocalName()))
}

// ImportNode returns a deep copy of n, scoped for the document and owned by it.
func (doc *Document) ImportNode(n dom.Node) (dom.Node, error) {
	node, err := unwrap(n)
	if err != nil {
		return nil, err
	}
	imported, err := doc.Transform(doc.wrap(clone(node.h)))
	if err != nil {
		return imported, err
	}
	if in, err := unwrap(imported); err == nil {
		doc.upgradeTree(in.h)
	}
	return imported, nil
}

// AppendChild inserts child as the last child of parent and scopes it. The
// document owning parent adopts child. AppendChild returns the node standing
// in place of child.
func (doc *Document) AppendChild(parent, child dom.Node) (dom.Node, error) {
	p, err := unwrap(parent)
	if err != nil {
		return nil, err
	}
	c, err := unwrap(child)
	if err != nil {
		return nil, err
	}
	if c.h.Parent != nil {
		c.h.Parent.RemoveChild(c.h)
	}
	p.h.AppendChild(c.h)
	p.doc.adopt(c.h, c.doc)
	return doc.Transform(p.doc.wrap(c.h))
}

func isElementName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-' || c == '.' || c == '_' || c == ':':
		default:
			return false
		}
	}
	return true
}
