package htmldom

import (
	"errors"
	"fmt"

	"github.com/npillmayer/scopedtags/markup"
	"github.com/npillmayer/scopedtags/registry"
	"github.com/npillmayer/scopedtags/scope"
	"github.com/npillmayer/scopedtags/transform"
	"golang.org/x/net/html"
)

// Errors of scoped documents.
var (
	ErrInvalidName = errors.New("invalid element name")
	ErrNotElement  = errors.New("node is not an element")
)

// Host is shared by the documents of all scopes of a registry.
type Host struct {
	transformer *transform.Transformer
	markup      *markup.Rewriter
}

// NewHost creates a host. Transformer and markup rewriter have to work on the
// same registry.
func NewHost(tr *transform.Transformer, mk *markup.Rewriter) *Host {
	if tr == nil || mk == nil {
		panic("htmldom host needs a transformer and a markup rewriter")
	}
	return &Host{
		transformer: tr,
		markup:      mk,
	}
}

// Registry returns the registry of the host.
func (host *Host) Registry() *registry.Registry {
	return host.transformer.Registry()
}

// Document returns a new document for scope s. The document owns the nodes it
// creates or parses, and the upgraded state of its elements is released
// together with the document.
func (host *Host) Document(s scope.ID) (*Document, error) {
	if err := host.Registry().Scopes().Validate(s); err != nil {
		return nil, fmt.Errorf("cannot create document: %w", err)
	}
	return &Document{
		host:     host,
		scope:    s,
		upgraded: make(map[*html.Node]struct{}),
	}, nil
}

// hasHandler is a predicate: is h an element with a name bound to a handler?
func (host *Host) hasHandler(h *html.Node) bool {
	if h.Type != html.ElementNode {
		return false
	}
	def, ok := host.Registry().FindByConcreteName(h.Data)
	return ok && def.Handler != nil
}
