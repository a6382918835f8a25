package element

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/domq/dom"
)

// Merge selects how a value combines with an attribute's or property's
// current value.
type Merge int

const (
	Overwrite Merge = iota // replace the current value
	Prepend                // new value in front of the current one
	Append                 // new value behind the current one
)

// Sigils recognized on Attrs/Props keys, for callers configuring merges
// through string maps: a "$__" prefix requests Prepend, a "__$" suffix
// requests Append. SetAttribute takes the Merge enum directly instead.
const (
	sigilPrepend = "$__"
	sigilAppend  = "__$"
)

// Attrs maps attribute names to values. Keys may carry merge sigils.
type Attrs map[string]string

// Props maps property names to values. A value is either a string
// (merged like an attribute, honoring key sigils) or an updater
// func(string) string receiving the current value and returning the new
// one. The property keys "text", "innerText" and "textContent" address
// the element's text content; any other key falls through to the
// attribute of that name. Values of other types are ignored.
type Props map[string]interface{}

// hiddenMarker is appended verbatim to the inline style by Hide and
// removed by Hide(false). Unhiding matches this exact text, so it must
// never be reformatted.
const hiddenMarker = "; display: none !important"

// Manager is a chainable builder operating on a single working element.
// The zero Manager is unusable; create one with New or the Find/Create/
// Replace/Use entry points. Managers are single-goroutine, short-lived
// values — configuration lives only for the synchronous call chain.
type Manager struct {
	doc      *dom.Document
	el       *dom.Node
	found    bool
	bypass   bool
	replaced *dom.Node
}

// New creates a Manager with no working element yet.
func New(doc *dom.Document) *Manager {
	return &Manager{doc: doc}
}

// Find creates a Manager resolved to the first match of selector, or to no
// element if nothing matches.
func Find(doc *dom.Document, selector string) *Manager {
	return New(doc).Find(selector)
}

// Create creates a Manager owning a new, detached element of the given
// tag type.
func Create(doc *dom.Document, tag string) *Manager {
	return New(doc).Create(tag)
}

// Replace creates a Manager which records the first match of selector as
// the node to be replaced by a later With call.
func Replace(doc *dom.Document, selector string) *Manager {
	return New(doc).Replace(selector)
}

// Use creates a Manager adopting a caller-supplied element.
func Use(doc *dom.Document, n *dom.Node) *Manager {
	return New(doc).Use(n)
}

// --- Resolution ------------------------------------------------------------

// Find resolves the working element to the first match of selector.
// Found reports whether a match existed.
func (m *Manager) Find(selector string) *Manager {
	if m.bypass {
		return m
	}
	m.el = m.doc.QueryFirst(selector)
	m.found = m.el != nil
	return m
}

// Create resolves the working element to a new, detached element of the
// given tag type.
func (m *Manager) Create(tag string) *Manager {
	if m.bypass {
		return m
	}
	m.el = m.doc.CreateElement(tag)
	m.found = false
	return m
}

// Replace records the first match of selector as the node a later With
// call will replace. No mutation happens yet.
func (m *Manager) Replace(selector string) *Manager {
	if m.bypass {
		return m
	}
	m.replaced = m.doc.QueryFirst(selector)
	return m
}

// Use adopts a caller-supplied element as the working element.
func (m *Manager) Use(n *dom.Node) *Manager {
	if m.bypass {
		return m
	}
	m.el = n
	m.found = n != nil
	return m
}

// Element returns the current working element, or nil.
func (m *Manager) Element() *dom.Node {
	return m.el
}

// Found reports whether the last Find located an existing element.
func (m *Manager) Found() bool {
	return m.found
}

// --- Branching -------------------------------------------------------------

// Or enters the alternate path: if the working element was found, every
// following call up to Then is skipped. This lets one chain express
// "find, or else create".
func (m *Manager) Or() *Manager {
	m.bypass = m.found
	return m
}

// Then leaves the alternate path; calls after it apply regardless of which
// branch ran.
func (m *Manager) Then() *Manager {
	m.bypass = false
	return m
}

// --- Mutation --------------------------------------------------------------

// On attaches the working element to a parent, unless it already lives in
// the document. The target may be a selector string, a *dom.Node, or nil
// for the document body. Unresolvable targets are a no-op.
func (m *Manager) On(target interface{}) *Manager {
	if m.bypass || m.el == nil || m.el.IsAttached() {
		return m
	}
	var parent *dom.Node
	switch t := target.(type) {
	case nil:
		parent = m.doc.Body()
	case string:
		parent = m.doc.QueryFirst(t)
	case *dom.Node:
		parent = t
	}
	if parent != nil {
		parent.AppendChild(m.el)
	}
	return m
}

// Set applies attribute and property mutations to the working element.
// Keys may carry merge sigils (see Attrs); updater functions in content
// receive the current value. Either map may be nil.
func (m *Manager) Set(attrs Attrs, content Props) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	for key, value := range attrs {
		name, merge := splitSigil(key)
		current, _ := m.el.Attr(name)
		m.el.SetAttr(name, mergeValue(current, value, merge))
	}
	for key, value := range content {
		name, merge := splitSigil(key)
		current := m.property(name)
		switch v := value.(type) {
		case func(string) string:
			m.setProperty(name, v(current))
		case string:
			m.setProperty(name, mergeValue(current, v, merge))
		default:
			tracer().Debugf("element: ignoring content value of type %T for %q", value, name)
		}
	}
	return m
}

// SetAttribute sets a single attribute with an explicit merge mode. This
// is the typed counterpart of sigil keys in Set.
func (m *Manager) SetAttribute(key, value string, merge Merge) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	current, _ := m.el.Attr(key)
	m.el.SetAttr(key, mergeValue(current, value, merge))
	return m
}

func (m *Manager) property(name string) string {
	switch name {
	case "text", "innerText", "textContent":
		return m.el.Text()
	}
	v, _ := m.el.Attr(name)
	return v
}

func (m *Manager) setProperty(name, value string) {
	switch name {
	case "text", "innerText", "textContent":
		m.el.SetText(value)
		return
	}
	m.el.SetAttr(name, value)
}

// With replaces the node recorded by Replace with the other manager's
// working element and returns the OTHER manager: the chain continues on
// the new element. Without a recorded node, or with an unresolved other,
// nothing is replaced (but other is still returned for chaining).
func (m *Manager) With(other *Manager) *Manager {
	if m.bypass {
		return m
	}
	if other == nil {
		return m
	}
	if m.replaced != nil && other.el != nil {
		m.replaced.ReplaceWith(other.el)
	}
	return other
}

// Move repositions the working element. The directions "in", "out", "up"
// and "down" delegate to In, Out, Up and Down with the given amount; any
// other string is treated as a CSS selector and the element is appended
// to its first match.
func (m *Manager) Move(directionOrSelector string, amount int) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	switch directionOrSelector {
	case "in":
		return m.In(amount)
	case "out":
		return m.Out(amount)
	case "up":
		return m.Up(amount)
	case "down":
		return m.Down(amount)
	}
	if target := m.doc.QueryFirst(directionOrSelector); target != nil {
		target.AppendChild(m.el)
	}
	return m
}

// Up moves the element before its preceding element sibling, up to amount
// times, stopping early when no further sibling exists.
func (m *Manager) Up(amount int) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	for i := 0; i < amount; i++ {
		prev := m.el.PrevSibling()
		if prev == nil {
			break
		}
		m.el.Parent().InsertBefore(m.el, prev)
	}
	return m
}

// Down moves the element behind its following element sibling, up to
// amount times, stopping early when no further sibling exists.
func (m *Manager) Down(amount int) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	for i := 0; i < amount; i++ {
		next := m.el.NextSibling()
		if next == nil {
			break
		}
		m.el.Parent().InsertAfter(m.el, next)
	}
	return m
}

// In nests the element inside its preceding element sibling, up to amount
// times, stopping when no preceding sibling exists.
func (m *Manager) In(amount int) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	for i := 0; i < amount; i++ {
		prev := m.el.PrevSibling()
		if prev == nil {
			break
		}
		prev.AppendChild(m.el)
	}
	return m
}

// Out un-nests the element, making it the following sibling of its current
// parent, up to amount times. It stops at the document body and when no
// grandparent exists.
func (m *Manager) Out(amount int) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	body := m.doc.Body()
	for i := 0; i < amount; i++ {
		parent := m.el.Parent()
		if parent == nil || parent.Equals(body) {
			break
		}
		grand := parent.Parent()
		if grand == nil {
			break
		}
		grand.InsertAfter(m.el, parent)
	}
	return m
}

// Hide toggles the element's visibility by appending a marker to its
// inline style, and removes the exact marker again on Hide(false). Both
// directions are idempotent.
func (m *Manager) Hide(hidden bool) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	style := m.el.Style()
	if hidden {
		if !strings.Contains(style, hiddenMarker) {
			m.el.SetStyle(style + hiddenMarker)
		}
	} else if strings.Contains(style, hiddenMarker) {
		m.el.SetStyle(strings.Replace(style, hiddenMarker, "", 1))
	}
	return m
}

// Remove detaches the element from the document, if attached.
func (m *Manager) Remove() *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	m.el.Remove()
	return m
}

// Listen attaches an event listener to the working element.
func (m *Manager) Listen(event string, cb dom.HandlerFunc) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	m.el.Listen(event, cb)
	return m
}

// Trigger dispatches a synthetic event on the working element.
func (m *Manager) Trigger(event string) *Manager {
	if m.bypass || m.el == nil {
		return m
	}
	m.el.Trigger(event)
	return m
}

// --- Merge helpers ---------------------------------------------------------

// splitSigil parses the merge convention off a map key: "$__key" requests
// Prepend, "key__$" requests Append, a plain key overwrites.
func splitSigil(key string) (string, Merge) {
	if strings.HasPrefix(key, sigilPrepend) {
		return strings.TrimPrefix(key, sigilPrepend), Prepend
	}
	if strings.HasSuffix(key, sigilAppend) {
		return strings.TrimSuffix(key, sigilAppend), Append
	}
	return key, Overwrite
}

func mergeValue(current, value string, merge Merge) string {
	switch merge {
	case Prepend:
		return value + current
	case Append:
		return current + value
	}
	return value
}
