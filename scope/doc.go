/*
Package scope manages the hierarchy of element-definition scopes.

Overview

A scope is one level of a tree of name registries. There is exactly one root
scope, the global namespace of the host platform. Every other scope has a parent
and is typically owned by a component instance with a local registry.

Scopes are not referenced by object identity but by an ID into an arena held by
a Tree. This makes walks along the ancestor chain cheap and lets tests create
isolated hierarchies:

    scopes := scope.NewTree()
    app, _ := scopes.NewScope(scopes.Root())
    widget, _ := scopes.NewScope(app)
    chain := scopes.Ancestors(widget)   // widget, app, root

Scopes are never removed from a tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scope

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.scope'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.scope")
}
