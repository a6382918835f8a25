/*
Package element implements a chainable builder for finding, creating and
mutating DOM elements.

A Manager resolves to a single working element — found by selector, freshly
created, or adopted — and then applies structural and attribute mutations
to it. The Or/Then pair expresses conditional construction in one chain:

	element.Find(doc, "#sidebar").
		Or().Create("div").Set(element.Attrs{"id": "sidebar"}, nil).On(nil).
		Then().Hide(false)

Or sets a bypass flag when the preceding Find succeeded, turning every call
up to Then into a no-op which still returns the builder; Then clears the
flag, so everything after it applies to whichever element won. All
operations on an unresolved element degrade to no-ops, never errors.

Status

Early draft—API may change frequently. Please stay patient.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package element

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'domq.element'.
func tracer() tracing.Trace {
	return tracing.Select("domq.element")
}
