package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

/*
Events are deliberately minimal: an event has a type and a target, and
dispatching invokes the target's own listeners only. There is no capture or
bubbling phase — the watcher layer re-binds listeners onto every matching
element instead, which covers the use cases of this module without an event
propagation model.
*/

// Event is delivered to listeners on dispatch.
type Event struct {
	Type   string // event type, e.g. "click"
	Target *Node  // element the event was dispatched on
}

// HandlerFunc is the signature of event listeners. It receives the element
// the listener is attached to and the dispatched event.
type HandlerFunc func(*Node, *Event)

// Listener is a registered event listener. It stays registered — surviving
// detach and re-attach of its node — until removed, or until its node is
// replaced via ReplaceWith.
type Listener struct {
	id    int
	doc   *Document
	h     *Node
	event string
	fn    HandlerFunc
	once  bool
}

// Listen registers fn for events of the given type on this node and returns
// the registration. A nil handler is ignored and yields a nil Listener.
func (n *Node) Listen(event string, fn HandlerFunc) *Listener {
	return n.listen(event, fn, false)
}

// ListenOnce registers fn like Listen, but the registration is discarded
// after its first invocation.
func (n *Node) ListenOnce(event string, fn HandlerFunc) *Listener {
	return n.listen(event, fn, true)
}

func (n *Node) listen(event string, fn HandlerFunc, once bool) *Listener {
	if n == nil || fn == nil || event == "" {
		return nil
	}
	d := n.doc
	d.mu.Lock()
	defer d.mu.Unlock()
	d.serial++
	l := &Listener{id: d.serial, doc: d, h: n, event: event, fn: fn, once: once}
	forNode := d.listeners[n.h]
	if forNode == nil {
		forNode = make(map[string][]*Listener)
		d.listeners[n.h] = forNode
	}
	forNode[event] = append(forNode[event], l)
	tracer().Debugf("dom: listener #%d for %q on %v", l.id, event, n)
	return l
}

// Remove deregisters the listener. Safe to call repeatedly and on nil.
func (l *Listener) Remove() {
	if l == nil {
		return
	}
	d := l.doc
	d.mu.Lock()
	defer d.mu.Unlock()
	l.removeLocked()
}

func (l *Listener) removeLocked() {
	forNode := l.doc.listeners[l.h.h]
	if forNode == nil {
		return
	}
	regs := forNode[l.event]
	for i, reg := range regs {
		if reg.id == l.id {
			forNode[l.event] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// Trigger dispatches a synthetic event of the given type on this node,
// invoking its listeners synchronously in registration order. Listeners
// registered with ListenOnce are deregistered before their callback runs,
// so re-entrant dispatch cannot fire them twice.
func (n *Node) Trigger(event string) {
	if n == nil || event == "" {
		return
	}
	d := n.doc
	d.mu.Lock()
	var fire []*Listener
	if forNode := d.listeners[n.h]; forNode != nil {
		fire = append(fire, forNode[event]...)
		remaining := forNode[event][:0]
		for _, l := range forNode[event] {
			if !l.once {
				remaining = append(remaining, l)
			}
		}
		forNode[event] = remaining
	}
	d.mu.Unlock()
	if len(fire) == 0 {
		return
	}
	tracer().Debugf("dom: dispatching %q on %v to %d listener(s)", event, n, len(fire))
	ev := &Event{Type: event, Target: n}
	for _, l := range fire {
		l.fn(l.h, ev)
	}
}
