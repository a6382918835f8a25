package watch

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"time"

	"github.com/npillmayer/domq/dom"
	"github.com/npillmayer/domq/maybe"
)

// BindFunc is the callback type for event bindings. It receives the element
// the listener fired on and the event.
type BindFunc func(*dom.Node, *dom.Event)

// ExistsFunc is the callback type for existence checks. It receives the
// flattened union of all selector matches, in selector order and document
// order within each selector. Watchers created with Unless invoke it with
// a nil slice.
type ExistsFunc func([]*dom.Node)

// Mode is the lifecycle policy of a Watcher, fixed at construction.
type Mode int

const (
	ModeAlways Mode = iota // evaluate for the lifetime of the subscription
	ModeOnce               // single-shot listeners; existence fires once
	ModeUntil              // evaluate until a condition reports true
	ModeOnly               // evaluate, gating elements through a predicate
	ModeUnless             // existence check inverted: fire on empty union
)

// binding is one entry of the event chain. Delay and callback are only
// ever set on the most recently appended entry.
type binding struct {
	event    string
	delay    maybe.Maybe[time.Duration]
	callback maybe.Maybe[BindFunc]
}

// trigger declares a secondary synthetic event, dispatched on a different
// element when the primary event fires.
type trigger struct {
	event    string
	selector string
}

// Watcher is a fluent builder binding listeners or existence callbacks to
// selector matches, re-evaluated on every document mutation. Create one
// with Always, Once, Until, Only or Unless; a zero Watcher is unusable.
//
// The builder itself is short-lived, but the first terminal call registers
// a mutation subscription which outlives it. Except for Once-mode
// existence watchers, the subscription persists until Stop is called or
// the document is dropped — creating watchers in a loop without stopping
// them accumulates subscriptions.
type Watcher struct {
	doc        *dom.Document
	mode       Mode
	untilCond  func() bool
	onlyCond   func(*dom.Node) bool
	selectors  []string
	requireAll bool
	chain      []*binding
	existsFn   ExistsFunc
	secondary  maybe.Maybe[trigger]
	obs        *dom.Observer
	bindArmed  bool // a binding evaluation has been triggered
	existArmed bool // an existence evaluation has been triggered
}

// Always creates a watcher which re-evaluates on every mutation for the
// lifetime of its subscription.
func Always(doc *dom.Document) *Watcher {
	return &Watcher{doc: doc, mode: ModeAlways}
}

// Once creates a watcher whose listeners fire a single time, and whose
// existence subscription tears itself down after the first mutation-driven
// evaluation pass.
func Once(doc *dom.Document) *Watcher {
	return &Watcher{doc: doc, mode: ModeOnce}
}

// Until creates a watcher which re-evaluates until cond reports true at
// the start of a pass; the subscription is then dropped without evaluating
// further. A nil cond behaves like Always.
func Until(doc *dom.Document, cond func() bool) *Watcher {
	return &Watcher{doc: doc, mode: ModeUntil, untilCond: cond}
}

// Only creates a watcher which processes just the matched elements for
// which pred reports true. A nil pred admits every element.
func Only(doc *dom.Document, pred func(*dom.Node) bool) *Watcher {
	return &Watcher{doc: doc, mode: ModeOnly, onlyCond: pred}
}

// Unless creates a watcher whose existence callback fires — with a nil
// match slice — whenever the union of selector matches is empty.
func Unless(doc *dom.Document) *Watcher {
	return &Watcher{doc: doc, mode: ModeUnless}
}

// --- Fluent configuration --------------------------------------------------

// When sets the selector list used for event binding. An empty list
// matches nothing and never errors.
func (w *Watcher) When(selectors ...string) *Watcher {
	w.selectors = selectors
	return w
}

// Gets appends a new entry for the given event type to the binding chain.
// Subsequent After or Then calls configure this entry.
func (w *Watcher) Gets(event string) *Watcher {
	w.chain = append(w.chain, &binding{event: event})
	return w
}

// After sets a delayed callback on the chain's most recent entry and
// triggers a binding evaluation pass. With an empty chain the call has no
// binding target but still evaluates.
//
// Note that evaluation passes re-attach listeners without deduplication:
// an element matched across several passes accumulates one listener per
// chain entry per pass, and its callback fires once per accumulated
// listener.
func (w *Watcher) After(delay time.Duration, cb BindFunc) *Watcher {
	if last := w.lastBinding(); last != nil {
		last.delay = maybe.Just(delay)
		if cb != nil {
			last.callback = maybe.Just(cb)
		}
	}
	w.bindArmed = true
	w.evaluate(false)
	w.subscribe()
	return w
}

// Then sets an immediate callback on the chain's most recent entry and
// triggers a binding evaluation pass. Equivalent to After with a zero
// delay. The note on listener accumulation under After applies.
func (w *Watcher) Then(cb BindFunc) *Watcher {
	if last := w.lastBinding(); last != nil {
		if cb != nil {
			last.callback = maybe.Just(cb)
		}
	}
	w.bindArmed = true
	w.evaluate(false)
	w.subscribe()
	return w
}

// And is an identity step, purely for readability of call chains.
func (w *Watcher) And() *Watcher {
	return w
}

// All sets the selector list and requires every selector to have at least
// one match before the existence callback fires.
func (w *Watcher) All(selectors ...string) *Watcher {
	w.selectors = selectors
	w.requireAll = true
	return w
}

// Any sets the selector list and lets a non-empty union of matches satisfy
// the existence check.
func (w *Watcher) Any(selectors ...string) *Watcher {
	w.selectors = selectors
	w.requireAll = false
	return w
}

// Exists sets the existence callback and triggers an existence evaluation
// pass. A nil callback is never invoked, but the pass still runs.
func (w *Watcher) Exists(cb ExistsFunc) *Watcher {
	w.existsFn = cb
	w.existArmed = true
	w.evaluate(false)
	w.subscribe()
	return w
}

// Trigger declares a secondary synthetic event to dispatch when the
// primary event fires. The dispatch target is declared with On.
func (w *Watcher) Trigger(event string) *Watcher {
	t := w.secondary.WithDefault(trigger{})
	t.event = event
	w.secondary = maybe.Just(t)
	return w
}

// On sets the target selector for a secondary trigger and starts a binding
// evaluation pass. The target is resolved at fire time, not at bind time,
// and the synthetic event is dispatched on the first match, if any.
func (w *Watcher) On(targetSelector string) *Watcher {
	t := w.secondary.WithDefault(trigger{})
	t.selector = targetSelector
	w.secondary = maybe.Just(t)
	w.bindArmed = true
	w.evaluate(false)
	w.subscribe()
	return w
}

// Stop disconnects the watcher's mutation subscription. Listeners already
// attached stay attached. Safe to call repeatedly.
func (w *Watcher) Stop() {
	if w.obs != nil {
		w.obs.Disconnect()
		w.obs = nil
	}
}

func (w *Watcher) lastBinding() *binding {
	if len(w.chain) == 0 {
		return nil
	}
	return w.chain[len(w.chain)-1]
}

// --- Evaluation ------------------------------------------------------------

func (w *Watcher) subscribe() {
	if w.obs != nil {
		return
	}
	w.obs = w.doc.Observe(func() {
		w.evaluate(true)
	})
}

// evaluate runs one evaluation pass. fromMutation distinguishes passes
// driven by a mutation notification from the immediate pass run by the
// triggering builder call: only mutation-driven passes count toward the
// Once-mode existence teardown.
func (w *Watcher) evaluate(fromMutation bool) {
	if w.mode == ModeUntil && w.untilCond != nil && w.untilCond() {
		tracer().Debugf("watch: until-condition satisfied, stopping")
		w.Stop()
		return
	}
	matches := make([][]*dom.Node, len(w.selectors))
	matched := 0
	var union []*dom.Node
	for i, sel := range w.selectors {
		matches[i] = w.doc.Query(sel)
		if len(matches[i]) > 0 {
			matched++
		}
		union = append(union, matches[i]...)
	}
	tracer().Debugf("watch: pass over %d selector(s), %d with matches, union %d",
		len(w.selectors), matched, len(union))
	if w.existArmed {
		w.checkExistence(matched, union)
	}
	if w.bindArmed {
		w.bindAll(union)
	}
	if w.mode == ModeOnce && w.existArmed && fromMutation {
		// The immediate synchronous pass never counts toward teardown.
		w.Stop()
	}
}

// checkExistence fires the existence callback when the quorum policy is
// satisfied. A missing callback means "do nothing".
func (w *Watcher) checkExistence(matched int, union []*dom.Node) {
	if w.existsFn == nil {
		return
	}
	if w.mode == ModeUnless {
		if len(union) == 0 {
			w.existsFn(nil)
		}
		return
	}
	if w.requireAll {
		if len(w.selectors) > 0 && matched == len(w.selectors) {
			w.existsFn(union)
		}
		return
	}
	if len(union) > 0 {
		w.existsFn(union)
	}
}

// bindAll attaches the configured event chain to every element of the
// union, in order. Elements matching two selectors are processed twice.
// Listeners from earlier passes are left in place.
func (w *Watcher) bindAll(union []*dom.Node) {
	for _, el := range union {
		if w.mode == ModeOnly && w.onlyCond != nil && !w.onlyCond(el) {
			continue
		}
		for _, b := range w.chain {
			w.bindOne(el, b)
		}
	}
}

func (w *Watcher) bindOne(el *dom.Node, b *binding) {
	if cb, ok := b.callback.Get(); ok {
		handler := w.handlerFor(cb, b.delay)
		if w.mode == ModeOnce {
			el.ListenOnce(b.event, handler)
		} else {
			el.Listen(b.event, handler)
		}
	}
	if t, ok := w.secondary.Get(); ok && t.event != "" && t.selector != "" {
		forward := func(_ *dom.Node, _ *dom.Event) {
			if target := w.doc.QueryFirst(t.selector); target != nil {
				target.Trigger(t.event)
			}
		}
		if w.mode == ModeOnce {
			el.ListenOnce(b.event, forward)
		} else {
			el.Listen(b.event, forward)
		}
	}
}

func (w *Watcher) handlerFor(cb BindFunc, delay maybe.Maybe[time.Duration]) dom.HandlerFunc {
	return func(el *dom.Node, ev *dom.Event) {
		if d, ok := delay.Get(); ok && d > 0 {
			time.AfterFunc(d, func() {
				cb(el, ev)
			})
			return
		}
		cb(el, ev)
	}
}
