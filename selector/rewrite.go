package selector

import (
	"strings"

	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
)

// Rewriter replaces logical element names in selectors by their concrete names
// for a scope.
type Rewriter struct {
	reg *registry.Registry
}

// New creates a selector rewriter working on a registry.
func New(reg *registry.Registry) *Rewriter {
	return &Rewriter{reg: reg}
}

// Registry returns the registry names are resolved with.
func (rw *Rewriter) Registry() *registry.Registry {
	return rw.reg
}

// Rewrite replaces the custom element names of type selectors in text by their
// concrete names for scope s. text may be a selector list, a single rule or a
// complete style sheet. Text for the root scope is returned unchanged.
func (rw *Rewriter) Rewrite(text string, s scope.ID) string {
	if rw.reg.Scopes().IsRoot(s) {
		return text
	}
	tokens := Tokenize(text)
	memo := mint.NewMemo()
	resolve := func(logical string) (string, error) {
		return rw.reg.Resolve(logical, s)
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	n := 0
	for _, token := range tokens {
		if token.Kind != Ident || !registry.IsCustomName(token.Text) {
			b.WriteString(token.Text)
			continue
		}
		logical := rw.reg.LogicalName(strings.ToLower(token.Text))
		concrete, err := memo.Lookup(logical, resolve)
		if err != nil {
			tracer().P("scope", s).Infof("leaving selector %s unscoped: %v", token.Text, err)
			b.WriteString(token.Text)
			continue
		}
		b.WriteString(concrete)
		n++
	}
	tracer().P("scope", s).Debugf("rewrote %d type selector(s)", n)
	return b.String()
}

// Restore replaces concrete element names of type selectors in text by their
// logical names.
func (rw *Rewriter) Restore(text string) string {
	var b strings.Builder
	for _, token := range Tokenize(text) {
		if token.Kind == Ident && registry.IsCustomName(token.Text) {
			if def, found := rw.reg.FindByConcreteName(strings.ToLower(token.Text)); found {
				b.WriteString(def.Logical)
				continue
			}
		}
		b.WriteString(token.Text)
	}
	return b.String()
}
