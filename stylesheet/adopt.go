package stylesheet

import (
	"strings"
	"sync"

	"github.com/npillmayer/scopedtags/scope"
	"github.com/npillmayer/scopedtags/selector"
)

// Adopted is the view of a Sheet from within a scope. Its rules are the rules of
// the sheet with selectors rewritten for the scope. The view follows all
// mutations of the sheet until it is closed.
type Adopted struct {
	mx     sync.RWMutex
	source *Sheet
	scope  scope.ID
	rw     *selector.Rewriter
	rules  []string
	cancel func()
}

// Adopt creates a scoped view of sheet for scope s.
func Adopt(sheet *Sheet, s scope.ID, rw *selector.Rewriter) *Adopted {
	a := &Adopted{source: sheet, scope: s, rw: rw}
	a.cancel = sheet.Subscribe(a.update)
	a.sync()
	return a
}

func (a *Adopted) update(m Mutation) {
	tracer().P("scope", a.scope).Debugf("adopted sheet follows %s", m.Name)
	a.sync()
}

func (a *Adopted) sync() {
	source := a.source.Rules()
	rules := make([]string, len(source))
	for i, r := range source {
		rules[i] = a.scopeRule(r)
	}
	a.mx.Lock()
	a.rules = rules
	a.mx.Unlock()
}

func (a *Adopted) scopeRule(rule string) string {
	scoped, err := Rewrite(rule, a.scope, a.rw)
	if err != nil {
		tracer().P("scope", a.scope).Errorf("cannot parse rule of adopted sheet: %v", err)
	}
	return scoped
}

// Scope returns the scope of the view.
func (a *Adopted) Scope() scope.ID {
	return a.scope
}

// Sheet returns the sheet which has been adopted.
func (a *Adopted) Sheet() *Sheet {
	return a.source
}

// Rules returns the scoped rules.
func (a *Adopted) Rules() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()
	rules := make([]string, len(a.rules))
	copy(rules, a.rules)
	return rules
}

// CSSText returns the scoped style sheet text.
func (a *Adopted) CSSText() string {
	return strings.Join(a.Rules(), "\n")
}

// Close stops following mutations of the sheet. The view keeps its current rules.
func (a *Adopted) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
