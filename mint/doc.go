/*
Package mint generates concrete element names from logical ones.

A concrete name is the logical name plus a dash and a suffix. Minters are
stateless with respect to any registry: they produce a fresh string and do not
check it against existing definitions.

Three strategies are available:

    Counter(1)        my-tag-1, my-tag-2, …   (monotonic, collision-free)
    RandomDigits(r)   my-tag-4711             (1 to 5 random digits)
    UUID()            my-tag-9f3c02ab         (random, 32 bits of entropy)

Counter is the default throughout this module. It is deterministic, which
makes scoped markup easy to read in tests and debugging sessions.

Memo is a small per-pass memo of logical to concrete names. It is used by the
rewriters and never replaces the registry.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scopedtags.mint'.
func tracer() tracing.Trace {
	return tracing.Select("scopedtags.mint")
}
