/*
Package scopedtags scopes custom element names.

Custom element names are global on most hosts: two components cannot define
the same name with different behavior. Package scopedtags lets every component
work with the names it likes ("logical names") and maps them to names which
are unique across the whole document ("concrete names"), per scope.

A Polyfill bundles the parts needed for this:

    registry.Registry       definitions of names, per scope
    markup.Rewriter         rewrites element names in markup text
    selector.Rewriter       rewrites type selectors in CSS text
    transform.Transformer   scopes parsed node trees
    htmldom.Host            documents per scope, over golang.org/x/net/html

Usage

    p := scopedtags.New()
    s, _ := p.NewScope(p.Root())
    p.Define("my-card", s, cardHandler)
    doc, _ := p.Document(s)
    doc.SetInnerHTML(el, `<my-card></my-card>`)

Clients may share a single process-wide polyfill by calling Default(). The
packages below scopedtags never use it.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scopedtags

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags")
}
