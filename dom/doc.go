/*
Package dom defines the view of a document tree needed for scoping element
names.

Status

The interfaces cover just what the tree transform needs: reading nodes,
creating elements and style elements, and moving nodes around. A concrete
implementation on top of golang.org/x/net/html is found in package htmldom.

Overview

Element names cannot be changed on a live node. Scoping a node therefore
means creating a new element with the concrete name, moving attributes and
children over, and replacing the node in its parent. Nodes which are bound to
a handler ("upgraded") are never touched.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.dom'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.dom")
}
