package dom

import (
	"errors"
	"strings"
)

// ErrForeignNode is returned by a Document for nodes of another implementation.
var ErrForeignNode = errors.New("node belongs to another DOM implementation")

// Attr represents a W3C-type Attr.
type Attr struct {
	Namespace string
	Key       string
	Value     string
}

// Node represents a W3C-type Node, reduced to what scoping needs.
type Node interface {
	IsElement() bool     // is this an element node?
	LocalName() string   // lower-case element name, empty for other nodes
	Attributes() []Attr  // attributes of an element
	TextContent() string // text of the node and all descendents
	ChildNodes() []Node  // all children, in order
	ParentNode() Node    // parent node, if any
	IsUpgraded() bool    // is the element bound to a handler?
}

// Document creates and re-arranges nodes. Every document serves a single scope.
type Document interface {
	CreateElement(name string) (Node, error) // create a detached element for the scope
	CreateStyle(css string) (Node, error)    // create a detached <style> element
	SetAttribute(n Node, key, value string)  // set or replace an attribute
	MoveChildren(from, to Node) error        // append all children of from to to
	ReplaceNode(old, replacement Node) error // put replacement at the position of old
}

// IsStyle is a predicate: is n a style element?
func IsStyle(n Node) bool {
	return n != nil && n.IsElement() && n.LocalName() == "style"
}

// Attribute returns the value of the attribute key of n.
func Attribute(n Node, key string) (string, bool) {
	key = strings.ToLower(key)
	for _, a := range n.Attributes() {
		if a.Namespace == "" && strings.ToLower(a.Key) == key {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits n and all its descendents depth first, parents before children,
// until f returns false.
func Walk(n Node, f func(Node) bool) bool {
	if !f(n) {
		return false
	}
	for _, ch := range n.ChildNodes() {
		if !Walk(ch, f) {
			return false
		}
	}
	return true
}

// Count returns the number of element nodes in the tree rooted at n.
func Count(n Node) int {
	cnt := 0
	Walk(n, func(node Node) bool {
		if node.IsElement() {
			cnt++
		}
		return true
	})
	tracer().Debugf("%d elements below %s", cnt, n.LocalName())
	return cnt
}
