/*
Package dom provides a lightweight in-memory Document Object Model for
declarative DOM interaction.

Overview

A Document wraps a tree of nodes (package golang.org/x/net/html) and adds the
primitives the rest of this module builds on: CSS selector queries (via
cascadia), structural mutation with change notification, per-node event
listeners with synthetic dispatch, and attribute/style/text accessors.

Change notification follows the MutationObserver model, scoped to the whole
document: every structural mutation performed through this package (append,
insert, remove, replace) synchronously notifies all registered observers
after the mutation completed. Observers receive no payload — interested
parties re-query the document, which trades efficiency for simplicity and
keeps ordering guarantees trivial.

All mutating operations on unattached or void targets degrade to no-ops
rather than errors. The one hard failure is a malformed selector string,
which Query passes to cascadia and panics on, mirroring the behavior of
querySelectorAll in a browser. Use QueryChecked to receive the error
instead.

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

// tracer will return a tracer. We are tracing to 'domq.dom'.
func tracer() tracing.Trace {
	return tracing.Select("domq.dom")
}
