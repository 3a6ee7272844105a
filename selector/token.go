package selector

import (
	"fmt"
	"strings"
)

// TokenKind is the kind of a selector token.
type TokenKind int8

// Kinds of tokens.
const (
	Single    TokenKind = iota // whitespace, combinators and punctuation
	Ident                      // bare identifier, i.e. a type selector
	Class                      // .class
	ID                         // #id
	Pseudo                     // :pseudo-class or ::pseudo-element, with opaque arguments
	Function                   // :not( and the like, arguments follow as tokens
	Attribute                  // [attr=value]
	Block                      // { declarations }
	AtRule                     // @rule prelude, including a '{' for group rules
	Comment                    // /* … */
	String                     // "…" or '…'
	Other                      // anything else
)

func (k TokenKind) String() string {
	switch k {
	case Single:
		return "single"
	case Ident:
		return "ident"
	case Class:
		return "class"
	case ID:
		return "id"
	case Pseudo:
		return "pseudo"
	case Function:
		return "function"
	case Attribute:
		return "attribute"
	case Block:
		return "block"
	case AtRule:
		return "at-rule"
	case Comment:
		return "comment"
	case String:
		return "string"
	}
	return "other"
}

// Token is a lexeme of selector text. Concatenating the text of all tokens
// reproduces the input.
type Token struct {
	Kind TokenKind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("<%s %q>", t.Kind, t.Text)
}

const singles = " \t\n\r\f*,()>+~|"

// Functional pseudo-classes with selector arguments.
var selectorFunctions = map[string]bool{
	":not":          true,
	":has":          true,
	":is":           true,
	":where":        true,
	":matches":      true,
	":-webkit-any":  true,
	":-moz-any":     true,
	":host":         true,
	":host-context": true,
	":slotted":      true,
	"::slotted":     true,
	"::cue":         true,
	"::cue-region":  true,
}

// Group rules with nested rules.
var groupRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@container": true,
	"@layer":     true,
	"@scope":     true,
	"@document":  true,
}

// Tokenize splits selector or style sheet text into tokens.
func Tokenize(text string) []Token {
	tz := &tokenizer{text: text}
	tz.run(0, len(text))
	return tz.tokens
}

type tokenizer struct {
	text   string
	tokens []Token
}

func (tz *tokenizer) emit(kind TokenKind, from, to int) {
	if to > from {
		tz.tokens = append(tz.tokens, Token{Kind: kind, Text: tz.text[from:to]})
	}
}

// run tokenizes text[i:end].
func (tz *tokenizer) run(i, end int) {
	text := tz.text
	for i < end {
		c := text[i]
		switch {
		case c == '/' && i+1 < end && text[i+1] == '*':
			j := closeComment(text, i+2, end)
			tz.emit(Comment, i, j)
			i = j
		case strings.IndexByte(singles, c) >= 0:
			tz.emit(Single, i, i+1)
			i++
		case c == '"' || c == '\'':
			j := closeString(text, i+1, end, c)
			tz.emit(String, i, j)
			i = j
		case c == '.' || c == '#':
			j := identEnd(text, i+1, end)
			if j == i+1 {
				tz.emit(Other, i, j)
			} else if c == '.' {
				tz.emit(Class, i, j)
			} else {
				tz.emit(ID, i, j)
			}
			i = j
		case c == ':':
			i = tz.pseudo(i, end)
		case c == '[':
			j := matching(text, i+1, end, '[', ']')
			tz.emit(Attribute, i, min(j+1, end))
			i = j + 1
		case c == '{':
			j := matching(text, i+1, end, '{', '}')
			tz.emit(Block, i, min(j+1, end))
			i = j + 1
		case c == '@':
			i = tz.atRule(i, end)
		case isIdentChar(c) || c == '\\':
			j := identEnd(text, i, end)
			tz.emit(Ident, i, j)
			i = j
		default:
			tz.emit(Other, i, i+1)
			i++
		}
	}
}

// pseudo tokenizes a pseudo-class or pseudo-element starting at text[i] == ':'.
func (tz *tokenizer) pseudo(i, end int) int {
	text := tz.text
	j := i + 1
	if j < end && text[j] == ':' {
		j++
	}
	j = identEnd(text, j, end)
	if j >= end || text[j] != '(' {
		tz.emit(Pseudo, i, j)
		return j
	}
	name := strings.ToLower(text[i:j])
	m := matching(text, j+1, end, '(', ')')
	if !selectorFunctions[name] {
		tz.emit(Pseudo, i, min(m+1, end)) // opaque arguments, e.g. :lang(de) or :nth-child(2n+1)
		return m + 1
	}
	tz.emit(Function, i, j+1)
	tz.run(j+1, min(m, end))
	if m < end {
		tz.emit(Single, m, m+1)
	}
	return m + 1
}

// atRule tokenizes an at-rule starting at text[i] == '@'.
func (tz *tokenizer) atRule(i, end int) int {
	text := tz.text
	j := identEnd(text, i+1, end)
	name := strings.ToLower(text[i:j])
	// find end of prelude
	k := j
	for k < end && text[k] != '{' && text[k] != ';' {
		switch text[k] {
		case '"', '\'':
			k = closeString(text, k+1, end, text[k])
		case '(':
			k = matching(text, k+1, end, '(', ')') + 1
		default:
			k++
		}
	}
	if k >= end || text[k] == ';' {
		tz.emit(AtRule, i, min(k+1, end))
		return k + 1
	}
	m := matching(text, k+1, end, '{', '}')
	if !groupRules[name] {
		tz.emit(AtRule, i, k)
		tz.emit(Block, k, min(m+1, end)) // e.g. @font-face or @keyframes
		return m + 1
	}
	tz.emit(AtRule, i, k+1)
	tz.run(k+1, min(m, end))
	if m < end {
		tz.emit(Single, m, m+1)
	}
	return m + 1
}

// --- Scanning helpers ------------------------------------------------------

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c >= 0x80
}

// identEnd returns the end of an identifier starting at text[i], honouring
// backslash escapes.
func identEnd(text string, i, end int) int {
	for i < end {
		if text[i] == '\\' {
			i += 2
			continue
		}
		if !isIdentChar(text[i]) {
			break
		}
		i++
	}
	return min(i, end)
}

// closeString returns the position after the closing quote.
func closeString(text string, i, end int, quote byte) int {
	for i < end {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return end
}

// closeComment returns the position after the end of a comment.
func closeComment(text string, i, end int) int {
	if k := strings.Index(text[i:end], "*/"); k >= 0 {
		return i + k + 2
	}
	return end
}

// matching returns the position of the delimiter closing a nested construct,
// skipping strings and comments. If there is none, end is returned.
func matching(text string, i, end int, open, close byte) int {
	depth := 1
	for i < end {
		c := text[i]
		switch {
		case c == '\\':
			i += 2
			continue
		case c == '"' || c == '\'':
			i = closeString(text, i+1, end, c)
			continue
		case c == '/' && i+1 < end && text[i+1] == '*':
			i = closeComment(text, i+2, end)
			continue
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return end
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
