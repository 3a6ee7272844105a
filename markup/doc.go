/*
Package markup rewrites element names in serialized HTML fragments.

Markup written by a component author uses logical names. Before such a
fragment is parsed for a non-root scope, every custom element name is replaced
by its concrete name for that scope, and opening tags receive a marker
attribute holding the logical name:

    <my-card class="x"></my-card>
      ⟹
    <my-card-3 data-tag-name="my-card" class="x"></my-card-3>

The scanner is not an HTML parser. It knows just enough about markup to find
tag names: it skips comments, quoted attribute values and the contents of
script and style elements. Anything it does not understand is copied
unchanged.

Restore performs the inverse operation for serialization.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.markup'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.markup")
}
