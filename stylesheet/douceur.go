package stylesheet

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/npillmayer/scopedtags/selector"
)

// CSSStyles is an adapter for interface StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// Parse parses style sheet text with douceur. Errors wrap ErrSyntax.
func Parse(text string) (*CSSStyles, error) {
	c, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	joinSelectors(c.Rules)
	return Wrap(c), nil
}

// joinSelectors undoes the selector split of the douceur parser, which cuts
// the prelude at every comma, including commas in strings, attribute
// selectors and functional pseudo-classes. A rule keeps its prelude as a
// single selector list.
func joinSelectors(rules []*css.Rule) {
	for _, r := range rules {
		if r.Kind == css.AtRule {
			joinSelectors(r.Rules)
			continue
		}
		r.Prelude = strings.TrimSpace(r.Prelude)
		r.Selectors = []string{r.Prelude}
	}
}

// Empty checks if this stylesheet contains any rules.
//
// Interface StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// Rules returns all the rules of a stylesheet.
//
// Interface StyleSheet
func (sheet *CSSStyles) Rules() []Rule {
	rules := make([]Rule, len(sheet.css.Rules))
	for i, r := range sheet.css.Rules {
		rules[i] = (*CSSRule)(r)
	}
	return rules
}

// CSSText serializes the stylesheet.
//
// Interface StyleSheet
func (sheet *CSSStyles) CSSText() string {
	return sheet.css.String()
}

// Scope rewrites the selectors of all rules for scope s, recursing into
// at-rules which embed rules (e.g. @media).
func (sheet *CSSStyles) Scope(s scope.ID, rw *selector.Rewriter) {
	scopeRules(sheet.css.Rules, s, rw)
}

func scopeRules(rules []*css.Rule, s scope.ID, rw *selector.Rewriter) {
	for _, r := range rules {
		if r.Kind == css.AtRule {
			if r.EmbedsRules() && !isKeyframes(r.Name) {
				scopeRules(r.Rules, s, rw)
			}
			continue
		}
		r.Prelude = rw.Rewrite(r.Prelude, s)
		r.Selectors = []string{r.Prelude}
	}
}

func isKeyframes(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), "keyframes")
}

var _ StyleSheet = &CSSStyles{}

// CSSRule is an adapter for interface Rule.
type CSSRule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r *CSSRule) Selector() string {
	return r.Prelude
}

// IsAtRule is true for at-rules.
func (r *CSSRule) IsAtRule() bool {
	return r.Kind == css.AtRule
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r *CSSRule) Properties() []string {
	decl := r.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px"
func (r *CSSRule) Value(key string) string {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Value
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r *CSSRule) IsImportant(key string) bool {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

// CSSText serializes the rule.
func (r *CSSRule) CSSText() string {
	return (*css.Rule)(r).String()
}

var _ Rule = &CSSRule{}

// Rewrite rewrites the type selectors of style sheet text for scope s.
// Everything except the names of type selectors is left untouched, including
// comments and formatting. The text is checked with the douceur parser; a
// parse error (wrapping ErrSyntax) is returned together with the rewritten
// text.
func Rewrite(text string, s scope.ID, rw *selector.Rewriter) (string, error) {
	if rw.Registry().Scopes().IsRoot(s) {
		return text, nil
	}
	_, err := Parse(text)
	if err != nil {
		tracer().Infof("rewriting unparsable style sheet: %v", err)
	}
	return rw.Rewrite(text, s), err
}
