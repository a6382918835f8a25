package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Observer is a subscription to structural changes of the document.
// Observers live until disconnected: a document accumulating observers over
// a very long session keeps them all — clients which create watchers
// repeatedly should disconnect the ones they are done with.
type Observer struct {
	id  int
	doc *Document
	fn  func()
}

// Observe subscribes fn to structural changes anywhere in the document.
// fn is invoked synchronously after each mutation, with no payload:
// observers re-query the document for anything they need. A nil fn yields
// a nil Observer.
func (d *Document) Observe(fn func()) *Observer {
	if fn == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.serial++
	o := &Observer{id: d.serial, doc: d, fn: fn}
	d.observers = append(d.observers, o)
	tracer().Debugf("dom: observer #%d connected", o.id)
	return o
}

// Disconnect cancels the subscription. Safe to call repeatedly and on nil.
// A disconnect during notification takes effect for the next mutation;
// the current round still delivers.
func (o *Observer) Disconnect() {
	if o == nil {
		return
	}
	d := o.doc
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, reg := range d.observers {
		if reg.id == o.id {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			tracer().Debugf("dom: observer #%d disconnected", o.id)
			return
		}
	}
}

func (o *Observer) invoke() {
	o.fn()
}
