/*
Package transform scopes materialized node trees.

When markup is parsed, a node is cloned or imported, or a subtree is inserted
into a scope, the elements of the subtree may still carry logical names. The
Transformer walks such a subtree and replaces every element with a logical
custom name by a new element with the concrete name of the nearest scope
owning the name:

    scope chain:  widget → app → root
    app owns 'my-icon' as 'my-icon-4'

    <my-icon>  inside widget  ⟹  <my-icon-4 data-tag-name="my-icon">

Children are processed before their parents. Elements already bound to a
handler are left alone, together with their subtrees. Style elements are
replaced by style elements with scoped selectors.

Scoping is best effort: nodes with names which cannot be resolved stay as
they are.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package transform

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.transform'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.transform")
}
