package stylesheet

import "errors"

// Errors of style sheet operations.
var (
	// ErrSyntax is returned for style sheet text which cannot be parsed.
	ErrSyntax = errors.New("style sheet syntax error")
	// ErrIndex is returned for rule indices out of range.
	ErrIndex = errors.New("rule index out of range")
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// Clients may scope rules without knowing about the CSS parser in use
// (see CSSStyles for the douceur-based implementation).
//
// See interface Rule.
type StyleSheet interface {
	Empty() bool     // does this stylesheet contain any rules?
	Rules() []Rule   // all the rules of a stylesheet
	CSSText() string // serialized form
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string        // the prelude / selectors of the rule
	IsAtRule() bool          // is this an at-rule, e.g. @media?
	Properties() []string    // property keys, e.g. "margin-top"
	Value(string) string     // property value for key, e.g. "15px"
	IsImportant(string) bool // is property key marked as important?
	CSSText() string         // serialized form
}
