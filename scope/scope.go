package scope

import (
	"errors"
	"fmt"
	"sync"

	tp "github.com/xlab/treeprint"
)

// ErrInvalidScope is returned whenever a scope reference is used which is not
// known to the Tree it is used with.
var ErrInvalidScope = errors.New("invalid scope")

// ID identifies a scope within a Tree. The zero value is never a valid ID.
type ID uint32

// None is the zero ID. It is used as the parent of the root scope.
const None ID = 0

func (id ID) String() string {
	if id == None {
		return "scope(none)"
	}
	return fmt.Sprintf("scope#%d", uint32(id))
}

type record struct {
	parent   ID
	children []ID
}

// Tree is an arena of scopes. The arena is created with a root scope and grows by
// calls to NewScope. Trees are safe for concurrent use.
type Tree struct {
	sync.RWMutex
	records []record // records[0] is unused, records[1] is the root
}

// NewTree creates a scope tree with a single root scope.
func NewTree() *Tree {
	t := &Tree{records: make([]record, 2, 16)}
	tracer().Debugf("new scope tree, root = %v", t.Root())
	return t
}

// Root returns the ID of the root scope.
func (t *Tree) Root() ID {
	return ID(1)
}

// NewScope creates a new scope as a child of parent.
// It returns an error wrapping ErrInvalidScope if parent is not part of t.
func (t *Tree) NewScope(parent ID) (ID, error) {
	t.Lock()
	defer t.Unlock()
	if !t.contains(parent) {
		return None, fmt.Errorf("%w: parent %v is not a scope of this tree", ErrInvalidScope, parent)
	}
	id := ID(len(t.records))
	t.records = append(t.records, record{parent: parent})
	t.records[parent].children = append(t.records[parent].children, id)
	tracer().P("scope", id).Debugf("new scope with parent %v", parent)
	return id, nil
}

// Contains is a predicate: is id a scope of t?
func (t *Tree) Contains(id ID) bool {
	t.RLock()
	defer t.RUnlock()
	return t.contains(id)
}

func (t *Tree) contains(id ID) bool {
	return id != None && int(id) < len(t.records)
}

// Validate returns an error wrapping ErrInvalidScope if id is not a scope of t.
func (t *Tree) Validate(id ID) error {
	if !t.Contains(id) {
		return fmt.Errorf("%w: %v", ErrInvalidScope, id)
	}
	return nil
}

// IsRoot is true only for the root scope.
func (t *Tree) IsRoot(id ID) bool {
	return id == t.Root()
}

// Parent returns the parent of a scope. For the root scope and for unknown IDs
// it returns (None, false).
func (t *Tree) Parent(id ID) (ID, bool) {
	t.RLock()
	defer t.RUnlock()
	if !t.contains(id) || id == t.Root() {
		return None, false
	}
	return t.records[id].parent, true
}

// Children returns the direct child scopes of a scope, in order of creation.
func (t *Tree) Children(id ID) []ID {
	t.RLock()
	defer t.RUnlock()
	if !t.contains(id) {
		return nil
	}
	ch := make([]ID, len(t.records[id].children))
	copy(ch, t.records[id].children)
	return ch
}

// Ancestors returns the chain of scopes from id up to the root, including both.
// For an unknown id the result is empty.
func (t *Tree) Ancestors(id ID) []ID {
	t.RLock()
	defer t.RUnlock()
	var chain []ID
	for t.contains(id) {
		chain = append(chain, id)
		id = t.records[id].parent
	}
	return chain
}

// Depth returns the number of ancestors of a scope, excluding the scope itself.
// The root has depth 0; unknown scopes return -1.
func (t *Tree) Depth(id ID) int {
	return len(t.Ancestors(id)) - 1
}

// Len returns the number of scopes in t, including the root.
func (t *Tree) Len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.records) - 1
}

// Dump returns a printable rendering of the scope hierarchy.
// If label is non-nil, it is called for every scope to decorate the output,
// e.g., with the names defined in a scope.
func (t *Tree) Dump(label func(ID) string) string {
	printer := tp.NewWithRoot(t.nodeValue(t.Root(), label))
	t.dump(printer, t.Root(), label)
	return printer.String()
}

func (t *Tree) dump(printer tp.Tree, id ID, label func(ID) string) {
	for _, ch := range t.Children(id) {
		if len(t.Children(ch)) == 0 {
			printer.AddNode(t.nodeValue(ch, label))
			continue
		}
		branch := printer.AddBranch(t.nodeValue(ch, label))
		t.dump(branch, ch, label)
	}
}

func (t *Tree) nodeValue(id ID, label func(ID) string) string {
	if label == nil {
		return id.String()
	}
	if l := label(id); l != "" {
		return id.String() + " " + l
	}
	return id.String()
}
