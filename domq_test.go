package domq_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/domq"
	"github.com/npillmayer/domq/dom"
	"github.com/npillmayer/domq/element"
)

// An end-to-end flow over both builders: ensure a container exists, then
// watch for buttons inside it, including ones created afterwards.
func TestDeclarativeFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domq.watch")
	defer teardown()
	//
	doc, err := dom.Parse(strings.NewReader(`<html><body></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	app := domq.Find(doc, "#app").
		Or().Create("div").Set(element.Attrs{"id": "app"}, nil).On(nil).
		Then()
	if app.Element() == nil || !app.Element().IsAttached() {
		t.Fatal("expected #app to exist under the body")
	}

	clicks := 0
	domq.Always(doc).
		When("#app button").
		Gets("click").
		Then(func(n *dom.Node, ev *dom.Event) {
			clicks++
		})

	// No button yet; one appears through the element builder.
	domq.Create(doc, "button").
		Set(element.Attrs{"id": "go"}, element.Props{"text": "Go"}).
		On("#app")
	doc.QueryFirst("#go").Trigger("click")
	if clicks != 1 {
		t.Errorf("expected the later-created button to be wired, clicks=%d", clicks)
	}
}

func TestUnlessFallback(t *testing.T) {
	doc := dom.New()
	warned := false
	domq.Unless(doc).
		Any("#content").
		Exists(func([]*dom.Node) {
			warned = true
		})
	if !warned {
		t.Error("expected the unless-callback to fire for a missing element")
	}
}
