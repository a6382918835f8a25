/*
Package watch implements a declarative watcher for DOM elements.

A Watcher binds event listeners or existence callbacks to elements matched
by CSS selectors, and keeps them bound as the document changes: every
structural mutation of the document re-runs a full selector evaluation
pass. This trades efficiency for simplicity — there is no incremental
diffing, and the ordering guarantees are exactly those of a fresh query.

A watcher is configured through a fluent chain and starts evaluating with
the first terminal call (Then, After, Exists, On):

	watch.Always(doc).
		When("button.save").
		Gets("click").
		Then(func(n *dom.Node, ev *dom.Event) { … })

	watch.Once(doc).
		All("#header", "#footer").
		Exists(func(ns []*dom.Node) { … })

The lifecycle mode is fixed at construction: Always re-evaluates for the
lifetime of the document, Once makes listeners single-shot (and tears the
existence subscription down after the first mutation-driven pass), Until
evaluates until a condition holds, Only gates elements through a predicate,
and Unless inverts the existence check.

Status

Early draft—API may change frequently. Please stay patient.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package watch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'domq.watch'.
func tracer() tracing.Trace {
	return tracing.Select("domq.watch")
}
