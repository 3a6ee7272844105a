/*
Package selector rewrites element names in CSS selectors and style sheets.

A selector written for a scope refers to elements by their logical names. After
markup has been rewritten, these elements carry concrete names, so the
selectors have to follow:

    my-card > .title, my-card:not(my-card-list *)
      ⟹
    my-card-1 > .title, my-card-1:not(my-card-list-2 *)

Only type selectors are affected. Classes, ids, attribute selectors and the
arguments of pseudo-classes like :lang() or :nth-child() stay as they are.
Selector arguments of :not(), :is(), :where(), :has(), :host() and ::slotted()
are rewritten recursively. Declaration blocks are copied verbatim, which
makes it possible to feed complete style sheets to the rewriter. Conditional
group rules (@media, @supports, …) have their nested rules rewritten.

The tokenizer is deliberately small. It is not a CSS parser and does not
validate its input.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.selector'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.selector")
}
