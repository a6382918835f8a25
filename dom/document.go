package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

/*
We manage a single mutable document tree. The underlying nodes are
html.Nodes; Document adds the side tables which html.Node cannot carry:
event listeners and mutation observers. Clients never touch html.Nodes
directly, but operate on Node handles bound to their document.
*/

// Document is a live DOM tree together with its listener and observer
// registries. Create one with New, Parse or FromNode.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	listeners map[*html.Node]map[string][]*Listener
	observers []*Observer
	serial    int // id source for listeners and observers
}

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// New creates an empty document: html, head and body elements and
// nothing else.
func New() *Document {
	d, _ := Parse(strings.NewReader(emptyDocument))
	return d
}

// Parse reads HTML and constructs a Document from it. The input is parsed
// with the standard html5 algorithm, i.e. html, head and body elements are
// synthesized if missing.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromNode(root), nil
}

// FromNode wraps an already parsed HTML tree. root should be a document
// node as produced by html.Parse.
func FromNode(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]*Listener),
	}
}

// Root returns the document root node.
func (d *Document) Root() *Node {
	return d.nodeFor(d.root)
}

// Body returns the document's body element, or nil for document fragments
// without one.
func (d *Document) Body() *Node {
	return d.findElement(atom.Body)
}

// Head returns the document's head element, or nil.
func (d *Document) Head() *Node {
	return d.findElement(atom.Head)
}

func (d *Document) findElement(a atom.Atom) *Node {
	var find func(h *html.Node) *html.Node
	find = func(h *html.Node) *html.Node {
		if h.Type == html.ElementNode && h.DataAtom == a {
			return h
		}
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			if n := find(ch); n != nil {
				return n
			}
		}
		return nil
	}
	if h := find(d.root); h != nil {
		return d.nodeFor(h)
	}
	return nil
}

// Query returns all elements matching a CSS selector, in document order.
// An empty result is not an error. A malformed selector will panic;
// use QueryChecked to receive the error instead.
func (d *Document) Query(selector string) []*Node {
	sel := cascadia.MustCompile(selector)
	return d.wrapAll(sel.MatchAll(d.root))
}

// QueryChecked is Query with an explicit error for malformed selectors.
func (d *Document) QueryChecked(selector string) ([]*Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(sel.MatchAll(d.root)), nil
}

// QueryFirst returns the first element matching a CSS selector, or nil.
// A malformed selector will panic, as with Query.
func (d *Document) QueryFirst(selector string) *Node {
	sel := cascadia.MustCompile(selector)
	if h := sel.MatchFirst(d.root); h != nil {
		return d.nodeFor(h)
	}
	return nil
}

func (d *Document) wrapAll(hs []*html.Node) []*Node {
	if len(hs) == 0 {
		return nil
	}
	nodes := make([]*Node, len(hs))
	for i, h := range hs {
		nodes[i] = d.nodeFor(h)
	}
	return nodes
}

// CreateElement creates a detached element node of the given tag type.
// The element belongs to this document but is not part of the tree until
// attached with AppendChild or one of its siblings.
func (d *Document) CreateElement(tag string) *Node {
	tag = strings.ToLower(tag)
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	tracer().Debugf("dom: created detached element <%s>", tag)
	return d.nodeFor(h)
}

// HTML renders the complete document as HTML text.
func (d *Document) HTML() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, d.root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (d *Document) nodeFor(h *html.Node) *Node {
	if h == nil {
		return nil
	}
	return &Node{doc: d, h: h}
}

// attached reports whether h lives under the document root.
func (d *Document) attached(h *html.Node) bool {
	for p := h; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

// notify informs all live observers of a structural change. Callbacks run
// outside the document lock, in registration order.
func (d *Document) notify() {
	d.mu.Lock()
	obs := make([]*Observer, len(d.observers))
	copy(obs, d.observers)
	d.mu.Unlock()
	tracer().Debugf("dom: subtree changed, notifying %d observer(s)", len(obs))
	for _, o := range obs {
		o.invoke()
	}
}

// dropListeners discards all listener registrations for a node. Called when
// a node leaves the document for good.
func (d *Document) dropListeners(h *html.Node) {
	d.mu.Lock()
	delete(d.listeners, h)
	d.mu.Unlock()
}
