package watch_test

import (
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/domq/dom"
	"github.com/npillmayer/domq/watch"
)

func parseDoc(t *testing.T, page string) *dom.Document {
	doc, err := dom.Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("cannot parse test page: %v", err)
	}
	return doc
}

func appendToBody(doc *dom.Document, tag string, attrs ...string) *dom.Node {
	el := doc.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.SetAttr(attrs[i], attrs[i+1])
	}
	doc.Body().AppendChild(el)
	return el
}

func TestBindPresentAndFutureElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domq.watch")
	defer teardown()
	//
	doc := parseDoc(t, `<html><body><button id="old">Go</button></body></html>`)
	count := 0
	watch.Always(doc).
		When("button").
		Gets("click").
		Then(func(n *dom.Node, ev *dom.Event) {
			count++
		})
	old := doc.QueryFirst("#old")
	old.Trigger("click")
	if count != 1 {
		t.Fatalf("expected 1 invocation for element present at bind time, have %d", count)
	}
	// A new button appears; the mutation pass binds it too.
	fresh := appendToBody(doc, "button", "id", "new")
	fresh.Trigger("click")
	if count != 2 {
		t.Errorf("expected element added later to be bound, count=%d", count)
	}
	// The pass re-attached to the old button as well, without
	// deduplication: it now carries two listeners.
	old.Trigger("click")
	if count != 4 {
		t.Errorf("expected duplicated listener on re-bound element, count=%d", count)
	}
}

func TestChainLastEntryReceivesCallback(t *testing.T) {
	doc := parseDoc(t, `<html><body><input id="f"></body></html>`)
	count := 0
	watch.Always(doc).
		When("input").
		Gets("click").
		Gets("focus").
		Then(func(*dom.Node, *dom.Event) {
			count++
		})
	f := doc.QueryFirst("#f")
	f.Trigger("click") // first chain entry never got a callback
	if count != 0 {
		t.Errorf("expected no callback for entry without one, count=%d", count)
	}
	f.Trigger("focus")
	if count != 1 {
		t.Errorf("expected callback on the chain's last entry, count=%d", count)
	}
}

func TestOnceListenersFireOnce(t *testing.T) {
	doc := parseDoc(t, `<html><body><button></button></body></html>`)
	count := 0
	watch.Once(doc).
		When("button").
		Gets("click").
		Then(func(*dom.Node, *dom.Event) {
			count++
		})
	btn := doc.QueryFirst("button")
	btn.Trigger("click")
	btn.Trigger("click")
	if count != 1 {
		t.Errorf("expected once-mode listener to fire a single time, count=%d", count)
	}
}

func TestAfterDelaysCallback(t *testing.T) {
	doc := parseDoc(t, `<html><body><button></button></body></html>`)
	done := make(chan struct{})
	watch.Always(doc).
		When("button").
		Gets("click").
		After(5*time.Millisecond, func(*dom.Node, *dom.Event) {
			close(done)
		})
	doc.QueryFirst("button").Trigger("click")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("expected delayed callback to fire, didn't")
	}
}

func TestAfterWithEmptyChainIsSilent(t *testing.T) {
	doc := parseDoc(t, `<html><body><button></button></body></html>`)
	watch.Always(doc).
		When("button").
		After(time.Millisecond, func(*dom.Node, *dom.Event) {
			t.Error("callback without a chain entry must never fire")
		})
	doc.QueryFirst("button").Trigger("click")
	time.Sleep(20 * time.Millisecond)
}

func TestExistsAllQuorum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domq.watch")
	defer teardown()
	//
	doc := parseDoc(t, `<html><body><div id="a"></div></body></html>`)
	fired := 0
	var got int
	watch.Always(doc).
		All("#a", "#b").
		Exists(func(ns []*dom.Node) {
			fired++
			got = len(ns)
		})
	if fired != 0 {
		t.Fatalf("all-quorum must not fire with a selector unmatched, fired %d times", fired)
	}
	appendToBody(doc, "div", "id", "b")
	if fired != 1 {
		t.Fatalf("expected existence callback once both selectors match, fired %d times", fired)
	}
	if got != 2 {
		t.Errorf("expected union of 2 matches, have %d", got)
	}
}

func TestExistsAnyQuorumImmediate(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="a"></div></body></html>`)
	fired := 0
	watch.Always(doc).
		Any("#a", "#nope").
		Exists(func(ns []*dom.Node) {
			fired++
			if len(ns) != 1 {
				t.Errorf("expected union of 1 match, have %d", len(ns))
			}
		})
	if fired != 1 {
		t.Errorf("any-quorum with a present match must fire immediately, fired %d times", fired)
	}
}

func TestOnceExistsTearsDownAfterFirstMutationPass(t *testing.T) {
	doc := parseDoc(t, `<html><body></body></html>`)
	fired := 0
	watch.Once(doc).
		Any("p.greeting").
		Exists(func([]*dom.Node) {
			fired++
		})
	if fired != 0 {
		t.Fatalf("no match yet, must not fire; fired %d times", fired)
	}
	appendToBody(doc, "p", "class", "greeting")
	if fired != 1 {
		t.Fatalf("expected exactly one firing on the qualifying mutation, have %d", fired)
	}
	appendToBody(doc, "p", "class", "greeting")
	if fired != 1 {
		t.Errorf("subscription must be gone after the first mutation pass, fired %d times", fired)
	}
}

func TestUnlessFiresOnEmptyUnion(t *testing.T) {
	doc := parseDoc(t, `<html><body></body></html>`)
	fired := 0
	watch.Unless(doc).
		Any("#missing").
		Exists(func(ns []*dom.Node) {
			if ns != nil {
				t.Errorf("unless-mode callback must receive nil, has %v", ns)
			}
			fired++
		})
	if fired != 1 {
		t.Fatalf("expected immediate firing on empty union, have %d", fired)
	}
	appendToBody(doc, "div") // unrelated; union still empty
	if fired != 2 {
		t.Errorf("expected one firing per qualifying pass, have %d", fired)
	}
	appendToBody(doc, "div", "id", "missing") // union no longer empty
	if fired != 2 {
		t.Errorf("expected no firing once a match exists, have %d", fired)
	}
}

func TestUntilStopsEvaluating(t *testing.T) {
	doc := parseDoc(t, `<html><body><button id="old"></button></body></html>`)
	stop := false
	count := 0
	watch.Until(doc, func() bool { return stop }).
		When("button").
		Gets("click").
		Then(func(*dom.Node, *dom.Event) {
			count++
		})
	stop = true
	fresh := appendToBody(doc, "button", "id", "new") // pass aborts before binding
	fresh.Trigger("click")
	if count != 0 {
		t.Errorf("expected no binding after the until-condition held, count=%d", count)
	}
	doc.QueryFirst("#old").Trigger("click") // earlier listener stays attached
	if count != 1 {
		t.Errorf("expected pre-existing listener to survive, count=%d", count)
	}
}

func TestOnlyGatesElements(t *testing.T) {
	doc := parseDoc(t, `<html><body>
	  <button id="yes" class="on"></button>
	  <button id="no"></button>
	</body></html>`)
	count := 0
	watch.Only(doc, func(n *dom.Node) bool {
		c, _ := n.Attr("class")
		return c == "on"
	}).
		When("button").
		Gets("click").
		Then(func(*dom.Node, *dom.Event) {
			count++
		})
	doc.QueryFirst("#no").Trigger("click")
	if count != 0 {
		t.Errorf("expected gated-out element to stay unbound, count=%d", count)
	}
	doc.QueryFirst("#yes").Trigger("click")
	if count != 1 {
		t.Errorf("expected admitted element to be bound, count=%d", count)
	}
}

func TestSecondaryTriggerResolvesAtFireTime(t *testing.T) {
	doc := parseDoc(t, `<html><body><button id="btn"></button></body></html>`)
	watch.Always(doc).
		When("#btn").
		Gets("click").
		Trigger("refresh").
		On("#panel")
	// The target does not exist yet; it is looked up at fire time.
	panel := appendToBody(doc, "div", "id", "panel")
	refreshed := 0
	panel.Listen("refresh", func(*dom.Node, *dom.Event) {
		refreshed++
	})
	doc.QueryFirst("#btn").Trigger("click")
	if refreshed == 0 {
		t.Error("expected synthetic event on the secondary target, none arrived")
	}
}

func TestSecondaryTriggerMissingTargetIsSilent(t *testing.T) {
	doc := parseDoc(t, `<html><body><button id="btn"></button></body></html>`)
	watch.Always(doc).
		When("#btn").
		Gets("click").
		Trigger("refresh").
		On("#nowhere")
	doc.QueryFirst("#btn").Trigger("click") // must not panic
}

func TestEmptySelectorListMatchesNothing(t *testing.T) {
	doc := parseDoc(t, `<html><body><button></button></body></html>`)
	watch.Always(doc).
		When().
		Gets("click").
		Then(func(*dom.Node, *dom.Event) {
			t.Error("no selectors, no bindings")
		})
	doc.QueryFirst("button").Trigger("click")
}

func TestStopDisconnects(t *testing.T) {
	doc := parseDoc(t, `<html><body></body></html>`)
	count := 0
	w := watch.Always(doc).
		When("button").
		Gets("click").
		Then(func(*dom.Node, *dom.Event) {
			count++
		})
	w.Stop()
	fresh := appendToBody(doc, "button")
	fresh.Trigger("click")
	if count != 0 {
		t.Errorf("expected no binding after Stop, count=%d", count)
	}
}
