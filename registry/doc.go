/*
Package registry is the table of tag definitions for a tree of scopes.

Overview

Every element name used in a non-root scope is mapped to a concrete name which
is unique across all scopes. The registry stores one TagDefinition per concrete
name:

    concrete      logical   scope      handler
    ----------------------------------------------
    my-button     my-button scope#1    *Button     (root: concrete == logical)
    my-button-1   my-button scope#2    *FancyBtn
    my-card-2     my-card   scope#2    <nil>       (forward declaration)

Concrete names are created lazily: resolving a logical name for a non-root scope
which has not seen the name before mints a fresh concrete name and stores a
definition without a handler. Adding a definition with a handler later
completes such a forward declaration.

Collaborators may wait for a name to become defined in a scope, see WhenDefined
and Wait.

A Registry is safe for concurrent use. It is an ordinary value: clients create
as many independent registries as they need.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package registry

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.registry'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.registry")
}
