/*
Package domq is a small declarative DOM interaction library: a fluent API
for binding events to elements matched by CSS selectors — including
elements appearing later through page mutation — and for finding, creating
and mutating elements with chainable builder semantics.

The module consists of two cooperating builders over a live document tree:
package watch re-evaluates selectors on every document mutation and wires
event listeners or existence callbacks to the matches; package element
resolves a single working element (found, created, adopted or replacing
another) and applies structural mutations to it. Package dom supplies the
substrate both build on: an in-memory DOM over golang.org/x/net/html with
cascadia selector queries, mutation observers and synthetic events.

This root package re-exports the builders' entry points as free functions,
so call sites read like the fluent chains they form:

	doc := dom.New()

	domq.Once(doc).
		When("button").
		Gets("click").
		Then(func(n *dom.Node, ev *dom.Event) { … })

	domq.Find(doc, "#app").
		Or().Create("div").Set(element.Attrs{"id": "app"}, nil).On(nil).
		Then().Hide(false)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domq

import (
	"github.com/npillmayer/domq/dom"
	"github.com/npillmayer/domq/element"
	"github.com/npillmayer/domq/watch"
)

// Always starts a watcher which re-evaluates on every document mutation
// for the lifetime of its subscription.
func Always(doc *dom.Document) *watch.Watcher {
	return watch.Always(doc)
}

// Once starts a watcher whose listeners fire a single time.
func Once(doc *dom.Document) *watch.Watcher {
	return watch.Once(doc)
}

// Until starts a watcher which re-evaluates until cond reports true.
func Until(doc *dom.Document, cond func() bool) *watch.Watcher {
	return watch.Until(doc, cond)
}

// Only starts a watcher processing just the elements pred admits.
func Only(doc *dom.Document, pred func(*dom.Node) bool) *watch.Watcher {
	return watch.Only(doc, pred)
}

// Unless starts a watcher whose existence callback fires when no selector
// matches.
func Unless(doc *dom.Document) *watch.Watcher {
	return watch.Unless(doc)
}

// Find starts an element chain resolved to the first match of selector.
func Find(doc *dom.Document, selector string) *element.Manager {
	return element.Find(doc, selector)
}

// Create starts an element chain owning a new, detached element.
func Create(doc *dom.Document, tag string) *element.Manager {
	return element.Create(doc, tag)
}

// Replace starts an element chain recording the first match of selector
// for replacement by a later With call.
func Replace(doc *dom.Document, selector string) *element.Manager {
	return element.Replace(doc, selector)
}

// Use starts an element chain adopting a caller-supplied element.
func Use(doc *dom.Document, n *dom.Node) *element.Manager {
	return element.Use(doc, n)
}
