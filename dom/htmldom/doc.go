/*
Package htmldom implements scoped documents on top of golang.org/x/net/html.

A Host holds what scoped documents share: the transformer and the markup
rewriter. For every scope, the host hands out Documents, which create and
re-arrange nodes on behalf of the tree transform and offer the operations the
platform glue intercepts:

    doc, _ := host.Document(s)
    doc.SetInnerHTML(el, `<my-card><my-icon></my-icon></my-card>`)
    doc.InnerHTML(el)  ⟹  <my-card-1 data-tag-name="my-card"><my-icon-2 …
    doc.TagName(el.FirstChild)  ⟹  MY-CARD

A document owns the trees it creates or parses, and keeps track of which of
their elements are upgraded. Inserting a subtree into a tree of another
document moves its upgraded elements over; dropping a document releases them.

Selectors passed to QuerySelector and friends are written with logical names
and are rewritten for the scope of the document before they are compiled by
cascadia.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package htmldom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.htmldom'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.htmldom")
}
