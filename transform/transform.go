package transform

import (
	"strings"

	"github.com/npillmayer/scopedtags/dom"
	"github.com/npillmayer/scopedtags/markup"
	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/npillmayer/scopedtags/selector"
)

// Transformer scopes node trees.
type Transformer struct {
	reg           *registry.Registry
	selectors     *selector.Rewriter
	marker        string
	registerAtUse bool
}

// Option is a type to help initializing transformers at creation time.
type Option struct {
	config func(*Transformer)
}

// Marker is an option to set the name of the attribute carrying the logical
// name of a scoped element. Default is markup.DefaultMarker.
func Marker(attr string) Option {
	return Option{config: func(t *Transformer) {
		if attr = strings.TrimSpace(attr); attr != "" {
			t.marker = strings.ToLower(attr)
		}
	}}
}

// RegisterAtUse is an option to control names no scope in the chain owns.
// If on (the default), such a name is declared in the scope the transform is
// called for. If off, elements with such names are left unscoped.
func RegisterAtUse(on bool) Option {
	return Option{config: func(t *Transformer) {
		t.registerAtUse = on
	}}
}

// New creates a transformer.
func New(reg *registry.Registry, selectors *selector.Rewriter, opts ...Option) *Transformer {
	t := &Transformer{
		reg:           reg,
		selectors:     selectors,
		marker:        markup.DefaultMarker,
		registerAtUse: true,
	}
	for _, option := range opts {
		option.config(t)
	}
	return t
}

// Registry returns the registry names are resolved with.
func (t *Transformer) Registry() *registry.Registry {
	return t.reg
}

// Selectors returns the selector rewriter used for style elements.
func (t *Transformer) Selectors() *selector.Rewriter {
	return t.selectors
}

// Marker returns the name of the marker attribute.
func (t *Transformer) Marker() string {
	return t.marker
}

// NearestOwningScope walks the scope chain from s towards the root and returns
// the first scope holding a definition for a logical name. If no scope does,
// s is returned.
func (t *Transformer) NearestOwningScope(logical string, s scope.ID) scope.ID {
	if owner, found := t.reg.OwningScope(logical, s); found {
		return owner
	}
	return s
}

// ConcreteName returns the concrete name of a logical name as seen from scope
// s, i.e. the name of the nearest scope owning it. A name no scope owns is
// declared in s, unless RegisterAtUse is off; then logical is returned.
func (t *Transformer) ConcreteName(logical string, s scope.ID) (string, error) {
	owner, found := t.reg.OwningScope(logical, s)
	if !found {
		if !t.registerAtUse {
			return logical, nil
		}
		owner = s
	}
	return t.reg.Resolve(logical, owner)
}

// Process scopes the subtree rooted at node for scope s, creating replacement
// nodes with doc, which should serve scope s. It returns the node standing at the position of node after
// the transform, which is node itself if it did not need to be replaced.
//
// Process fails only if doc is unable to re-arrange the tree, or for an
// invalid scope. Unresolvable names are left unscoped.
func (t *Transformer) Process(node dom.Node, doc dom.Document, s scope.ID) (dom.Node, error) {
	if err := t.reg.Scopes().Validate(s); err != nil {
		return node, err
	}
	p := &pass{Transformer: t, doc: doc, scope: s, memo: mint.NewMemo()}
	n, err := p.process(node)
	tracer().P("scope", s).Debugf("transform replaced %d node(s)", p.replaced)
	return n, err
}

type pass struct {
	*Transformer
	doc      dom.Document
	scope    scope.ID
	memo     *mint.Memo
	replaced int
}

func (p *pass) process(n dom.Node) (dom.Node, error) {
	if n == nil {
		return n, nil
	}
	if !n.IsElement() { // document and fragment nodes
		return n, p.processChildren(n)
	}
	if n.IsUpgraded() {
		return n, nil
	}
	if dom.IsStyle(n) {
		return p.scopeStyle(n)
	}
	if err := p.processChildren(n); err != nil {
		return n, err
	}
	name := n.LocalName()
	if !registry.IsCustomName(name) {
		return n, nil
	}
	logical := p.reg.LogicalName(name)
	concrete, ok := p.concreteName(logical)
	if !ok || concrete == name {
		return n, nil
	}
	return p.replace(n, concrete, logical)
}

func (p *pass) processChildren(n dom.Node) error {
	for _, ch := range n.ChildNodes() {
		if _, err := p.process(ch); err != nil {
			return err
		}
	}
	return nil
}

// concreteName finds the concrete name for a logical name, as seen from the
// scope of the pass.
func (p *pass) concreteName(logical string) (string, bool) {
	concrete, err := p.memo.Lookup(logical, func(logical string) (string, error) {
		return p.ConcreteName(logical, p.scope)
	})
	if err != nil {
		tracer().P("scope", p.scope).Infof("leaving <%s> unscoped: %v", logical, err)
		return "", false
	}
	return concrete, true
}

func (p *pass) replace(n dom.Node, concrete, logical string) (dom.Node, error) {
	repl, err := p.doc.CreateElement(concrete)
	if err != nil {
		tracer().P("scope", p.scope).Infof("cannot create <%s>, leaving <%s> unscoped: %v",
			concrete, n.LocalName(), err)
		return n, nil
	}
	marked := false
	for _, a := range n.Attributes() {
		if a.Namespace != "" {
			continue
		}
		if strings.ToLower(a.Key) == p.marker {
			marked = true
		}
		p.doc.SetAttribute(repl, a.Key, a.Value)
	}
	if !marked {
		p.doc.SetAttribute(repl, p.marker, logical)
	}
	if err = p.doc.MoveChildren(n, repl); err != nil {
		return n, err
	}
	if err = p.doc.ReplaceNode(n, repl); err != nil {
		return n, err
	}
	p.replaced++
	tracer().P("scope", p.scope).Debugf("replaced <%s> by <%s>", n.LocalName(), concrete)
	return repl, nil
}

func (p *pass) scopeStyle(n dom.Node) (dom.Node, error) {
	css := n.TextContent()
	scoped := p.selectors.Rewrite(css, p.scope)
	if scoped == css {
		return n, nil
	}
	style, err := p.doc.CreateStyle(scoped)
	if err != nil {
		return n, err
	}
	for _, a := range n.Attributes() {
		if a.Namespace == "" {
			p.doc.SetAttribute(style, a.Key, a.Value)
		}
	}
	if err = p.doc.ReplaceNode(n, style); err != nil {
		return n, err
	}
	p.replaced++
	return style, nil
}
