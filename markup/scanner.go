package markup

import (
	"strings"
)

// Tag is an element tag found in markup text.
type Tag struct {
	Name    string // tag name as written
	Offset  int    // byte position of the name
	Closing bool   // is this a closing tag?
	end     int    // position of the terminating '>', or len(text)
}

// nameEnd returns the position after the tag name.
func (tag Tag) nameEnd() int {
	return tag.Offset + len(tag.Name)
}

// TagNames returns every element tag of a markup text, in order of appearance.
// Tags inside comments, inside quoted attribute values and inside the contents
// of script or style elements are not reported.
func TagNames(text string) []Tag {
	var tags []Tag
	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], "<!--") {
			i = skipPast(text, i+4, "-->")
			continue
		}
		if text[i] != '<' {
			i++
			continue
		}
		j, closing := i+1, false
		if j < len(text) && text[j] == '/' {
			closing, j = true, j+1
		}
		k := j
		for k < len(text) && isNameChar(text[k]) {
			k++
		}
		if k == j || !isLetter(text[j]) { // not a tag, e.g. "a < b" or "<!DOCTYPE"
			i = j
			continue
		}
		tag := Tag{Name: text[j:k], Offset: j, Closing: closing}
		tag.end = tagEnd(text, k)
		tags = append(tags, tag)
		i = tag.end + 1
		if !closing {
			if raw := strings.ToLower(tag.Name); raw == "script" || raw == "style" {
				i = skipRawText(text, i, raw)
			}
		}
	}
	return tags
}

// tagEnd finds the '>' terminating a tag, skipping quoted attribute values.
// A quote opens a value only right after '=', so an apostrophe within an
// unquoted value (title=it's) is an ordinary character.
func tagEnd(text string, from int) int {
	var quote byte
	value := false // at the start of an attribute value?
	for i := from; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '>':
			return i
		case c == '=':
			value = true
		case isSpace(c):
		case value && (c == '"' || c == '\''):
			quote = c
			value = false
		default:
			value = false
		}
	}
	return len(text)
}

// skipRawText skips the contents of a script or style element.
func skipRawText(text string, from int, name string) int {
	for i := from; i < len(text); i++ {
		k := strings.Index(text[i:], "</")
		if k < 0 {
			break
		}
		i += k
		if e := i + 2 + len(name); e <= len(text) && strings.EqualFold(text[i+2:e], name) {
			return i
		}
	}
	return len(text)
}

func skipPast(text string, from int, delim string) int {
	if from > len(text) {
		return len(text)
	}
	if k := strings.Index(text[from:], delim); k >= 0 {
		return from + k + len(delim)
	}
	return len(text)
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isLetter(c) || c >= '0' && c <= '9' || c == '-' || c == '.'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// --- Attributes ------------------------------------------------------------

// attribute is a span of markup text holding a single attribute, including
// the whitespace preceding it.
type attribute struct {
	name       string
	value      string
	start, end int
}

// attributes lists the attributes of an opening tag.
func (tag Tag) attributes(text string) []attribute {
	var attrs []attribute
	i, end := tag.nameEnd(), tag.end
	for i < end {
		start := i
		for i < end && isSpace(text[i]) {
			i++
		}
		if i >= end {
			break
		}
		if text[i] == '/' {
			i++
			continue
		}
		n := i
		for i < end && !isSpace(text[i]) && text[i] != '=' && text[i] != '/' {
			i++
		}
		attr := attribute{name: strings.ToLower(text[n:i]), start: start}
		for i < end && isSpace(text[i]) {
			i++
		}
		if i < end && text[i] == '=' {
			i++
			for i < end && isSpace(text[i]) {
				i++
			}
			if i < end && (text[i] == '"' || text[i] == '\'') {
				q := text[i]
				v := i + 1
				i = v
				for i < end && text[i] != q {
					i++
				}
				attr.value = text[v:i]
				if i < end {
					i++
				}
			} else {
				v := i
				for i < end && !isSpace(text[i]) {
					i++
				}
				attr.value = text[v:i]
			}
		}
		attr.end = i
		if attr.name != "" {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

func (tag Tag) attribute(text, name string) (attribute, bool) {
	for _, attr := range tag.attributes(text) {
		if attr.name == name {
			return attr, true
		}
	}
	return attribute{}, false
}
