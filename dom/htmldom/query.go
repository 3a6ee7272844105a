package htmldom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/scopedtags/dom"
	"golang.org/x/net/html"
)

// Collection is a list of elements, in document order.
type Collection struct {
	nodes []Node
}

// Len returns the number of elements in c.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

// Item returns element i of c, or nil.
func (c *Collection) Item(i int) dom.Node {
	if i < 0 || i >= c.Len() {
		return nil
	}
	return c.nodes[i]
}

// NamedItem returns the first element with an id or name attribute equal to
// name, or nil.
func (c *Collection) NamedItem(name string) dom.Node {
	if name == "" {
		return nil
	}
	for _, n := range c.nodes {
		for _, a := range n.h.Attr {
			if a.Namespace == "" && (a.Key == "id" || a.Key == "name") && a.Val == name {
				return n
			}
		}
	}
	return nil
}

// Nodes returns the elements of c.
func (c *Collection) Nodes() []Node {
	if c == nil {
		return nil
	}
	return c.nodes
}

func (doc *Document) compile(selector string) (cascadia.Matcher, error) {
	scoped := doc.host.transformer.Selectors().Rewrite(selector, doc.scope)
	sel, err := cascadia.ParseGroup(scoped)
	if err != nil {
		tracer().P("scope", doc.scope).Infof("cannot compile selector %q: %v", scoped, err)
	}
	return sel, err
}

// QuerySelector returns the first descendent of root matching a selector
// written with logical names, or nil.
func (doc *Document) QuerySelector(root dom.Node, selector string) (dom.Node, error) {
	node, err := unwrap(root)
	if err != nil {
		return nil, err
	}
	sel, err := doc.compile(selector)
	if err != nil {
		return nil, err
	}
	if found := cascadia.Query(node.h, sel); found != nil {
		return node.doc.wrap(found), nil
	}
	return nil, nil
}

// QuerySelectorAll returns all descendents of root matching a selector
// written with logical names.
func (doc *Document) QuerySelectorAll(root dom.Node, selector string) (*Collection, error) {
	node, err := unwrap(root)
	if err != nil {
		return nil, err
	}
	sel, err := doc.compile(selector)
	if err != nil {
		return nil, err
	}
	return collect(node.doc, cascadia.QueryAll(node.h, sel)), nil
}

// GetElementsByTagName returns all descendents of root with a logical name,
// whichever scope they have been scoped for. Name "*" matches every element.
func (doc *Document) GetElementsByTagName(root dom.Node, logical string) (*Collection, error) {
	node, err := unwrap(root)
	if err != nil {
		return nil, err
	}
	logical = strings.ToLower(logical)
	names := make(map[string]bool)
	for _, name := range doc.host.Registry().ConcreteNames(logical) {
		names[name] = true
	}
	var found []*html.Node
	walk(node.h, func(c *html.Node) {
		if c != node.h && c.Type == html.ElementNode && (logical == "*" || names[strings.ToLower(c.Data)]) {
			found = append(found, c)
		}
	})
	return collect(node.doc, found), nil
}

// collect wraps elements of a tree owned by owner.
func collect(owner *Document, hs []*html.Node) *Collection {
	c := &Collection{nodes: make([]Node, len(hs))}
	for i, h := range hs {
		c.nodes[i] = owner.wrap(h)
	}
	return c
}
