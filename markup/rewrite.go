package markup

import (
	"strings"

	"github.com/npillmayer/scopedtags/mint"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
)

// DefaultMarker is the name of the attribute carrying the logical name of an
// element after its tag has been rewritten.
const DefaultMarker = "data-tag-name"

// Rewriter replaces logical element names in markup by their concrete names
// for a scope.
type Rewriter struct {
	reg    *registry.Registry
	marker string
}

// Option is a type to help initializing rewriters at creation time.
type Option struct {
	config func(*Rewriter)
}

// Marker is an option to set the name of the marker attribute. The default is
// DefaultMarker.
//
//     rw := markup.New(reg, markup.Marker("data-is"))
//
func Marker(attr string) Option {
	return Option{config: func(rw *Rewriter) {
		if attr = strings.TrimSpace(attr); attr != "" {
			rw.marker = strings.ToLower(attr)
		}
	}}
}

// New creates a markup rewriter working on a registry.
func New(reg *registry.Registry, opts ...Option) *Rewriter {
	rw := &Rewriter{reg: reg, marker: DefaultMarker}
	for _, option := range opts {
		option.config(rw)
	}
	return rw
}

// Marker returns the name of the marker attribute.
func (rw *Rewriter) Marker() string {
	return rw.marker
}

// Registry returns the registry names are resolved with.
func (rw *Rewriter) Registry() *registry.Registry {
	return rw.reg
}

// Rewrite replaces every custom element name in text by its concrete name for
// scope s. Opening tags receive a marker attribute with the logical name,
// unless one is already present. Markup for the root scope is returned unchanged.
//
// Names which have been rewritten for another scope before are mapped back to
// their logical names first, which makes it possible to move markup between
// scopes. The marker attribute of a tag takes precedence over the registry:
// markup scoped by another registry keeps the logical names it carries.
func (rw *Rewriter) Rewrite(text string, s scope.ID) string {
	if rw.reg.Scopes().IsRoot(s) {
		return text
	}
	tags := TagNames(text)
	if len(tags) == 0 {
		return text
	}
	memo := mint.NewMemo()
	resolve := func(logical string) (string, error) {
		return rw.reg.Resolve(logical, s)
	}
	var b strings.Builder
	b.Grow(len(text) + len(tags)*(len(rw.marker)+16))
	last := 0
	seen := make(map[string]string) // concrete names of marked tags → logical names
	for _, tag := range tags {
		if !registry.IsCustomName(tag.Name) {
			continue
		}
		name := strings.ToLower(tag.Name)
		logical, found := seen[name]
		marked := false
		if !tag.Closing {
			var marker attribute
			marker, marked = tag.attribute(text, rw.marker)
			if value := strings.ToLower(marker.value); marked && registry.IsCustomName(value) {
				logical, found = value, true
				seen[name] = logical
			}
		}
		if !found {
			logical = rw.reg.LogicalName(name)
		}
		concrete, err := memo.Lookup(logical, resolve)
		if err != nil {
			tracer().P("scope", s).Infof("leaving <%s> unscoped: %v", tag.Name, err)
			continue
		}
		b.WriteString(text[last:tag.Offset])
		b.WriteString(concrete)
		if !tag.Closing && !marked {
			b.WriteString(" " + rw.marker + `="` + logical + `"`)
		}
		last = tag.nameEnd()
	}
	b.WriteString(text[last:])
	tracer().P("scope", s).Debugf("rewrote %d tag(s), %d distinct name(s)", len(tags), memo.Len())
	return b.String()
}

// Restore replaces concrete element names in text by their logical names and
// removes the marker attributes. It is the inverse of Rewrite and is used to
// serialize scoped markup the way the author wrote it.
func (rw *Rewriter) Restore(text string) string {
	var b strings.Builder
	last := 0
	seen := make(map[string]string) // concrete names of marked tags → logical names
	for _, tag := range TagNames(text) {
		if !registry.IsCustomName(tag.Name) {
			continue
		}
		name := strings.ToLower(tag.Name)
		logical, found := seen[name]
		if !found {
			logical = rw.reg.LogicalName(name)
		}
		var marker attribute
		var marked bool
		if !tag.Closing {
			if marker, marked = tag.attribute(text, rw.marker); marked && marker.value != "" {
				logical = marker.value
				seen[name] = logical
			}
		}
		if logical == name && !marked {
			continue
		}
		b.WriteString(text[last:tag.Offset])
		b.WriteString(logical)
		last = tag.nameEnd()
		if marked {
			b.WriteString(text[last:marker.start])
			last = marker.end
		}
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// LogicalName reads back the logical name of a tag, given its concrete name
// and the value of its marker attribute (which may be empty).
func (rw *Rewriter) LogicalName(concrete, marker string) string {
	if marker != "" {
		return marker
	}
	return rw.reg.LogicalName(strings.ToLower(concrete))
}
