package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is a handle to an element of a Document. Handles are cheap values;
// two handles are interchangeable iff they wrap the same underlying node
// (see Equals). The zero Node is unusable — obtain handles from Document
// queries or CreateElement.
type Node struct {
	doc *Document
	h   *html.Node
}

// Document returns the document this node belongs to.
func (n *Node) Document() *Document {
	return n.doc
}

// HTMLNode gets the underlying HTML node. Mutating it directly bypasses
// change notification.
func (n *Node) HTMLNode() *html.Node {
	if n == nil {
		return nil
	}
	return n.h
}

// Tag returns the element's tag name, or "#text" etc. for non-elements.
func (n *Node) Tag() string {
	if n == nil {
		return ""
	}
	if n.h.Type != html.ElementNode {
		return nodeTypeName(n.h.Type)
	}
	return n.h.Data
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	}
	return "#node"
}

// Equals reports whether two handles denote the same underlying node.
func (n *Node) Equals(other *Node) bool {
	if n == nil || other == nil {
		return n == nil && other == nil
	}
	return n.h == other.h
}

// IsAttached reports whether the node currently lives under the document
// root.
func (n *Node) IsAttached() bool {
	if n == nil {
		return false
	}
	return n.doc.attached(n.h)
}

// String returns a short description for diagnostics.
func (n *Node) String() string {
	if n == nil {
		return "(nil node)"
	}
	return "<" + n.Tag() + ">"
}

// --- Tree navigation -------------------------------------------------------

// Parent returns the parent element, or nil for detached nodes and the root.
func (n *Node) Parent() *Node {
	if n == nil || n.h.Parent == nil {
		return nil
	}
	return n.doc.nodeFor(n.h.Parent)
}

// Children returns all element children of a node, in document order.
// Text and comment nodes are skipped.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var children []*Node
	for ch := n.h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			children = append(children, n.doc.nodeFor(ch))
		}
	}
	return children
}

// ChildNodes returns all child nodes, text and comment nodes included.
// Compare Children, which restricts to elements.
func (n *Node) ChildNodes() []*Node {
	if n == nil {
		return nil
	}
	var children []*Node
	for ch := n.h.FirstChild; ch != nil; ch = ch.NextSibling {
		children = append(children, n.doc.nodeFor(ch))
	}
	return children
}

// PrevSibling returns the nearest preceding element sibling, or nil.
func (n *Node) PrevSibling() *Node {
	if n == nil {
		return nil
	}
	for s := n.h.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return n.doc.nodeFor(s)
		}
	}
	return nil
}

// NextSibling returns the nearest following element sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n == nil {
		return nil
	}
	for s := n.h.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return n.doc.nodeFor(s)
		}
	}
	return nil
}

// IndexInParent returns the position of the node within the element
// children of its parent, or -1 for detached nodes.
func (n *Node) IndexInParent() int {
	parent := n.Parent()
	if parent == nil {
		return -1
	}
	for i, ch := range parent.Children() {
		if ch.h == n.h {
			return i
		}
	}
	return -1
}

// --- Structural mutation ---------------------------------------------------

/*
Structural operations detach the moved node from its old position first, so
a node can only ever appear once in the tree. Each successful mutation of
the attached tree triggers one observer notification; mutations of detached
subtrees are silent, matching an observer scoped to the document subtree.
*/

// AppendChild appends ch as the last child of n. A nil child is ignored.
// If ch is attached elsewhere it is moved. Returns n for chaining.
func (n *Node) AppendChild(ch *Node) *Node {
	if n == nil || ch == nil || ch.h == n.h || isAncestorOf(ch.h, n.h) {
		return n
	}
	wasLive := n.doc.attached(n.h) || n.doc.attached(ch.h)
	detach(ch.h)
	n.h.AppendChild(ch.h)
	if wasLive {
		n.doc.notify()
	}
	return n
}

// InsertChildAt inserts ch among the element children of n at position i,
// shifting children at later positions. Positions past the end append.
// Returns n for chaining.
func (n *Node) InsertChildAt(i int, ch *Node) *Node {
	if n == nil || ch == nil || ch.h == n.h {
		return n
	}
	children := n.Children()
	if i < 0 {
		i = 0
	}
	if i >= len(children) {
		return n.AppendChild(ch)
	}
	return n.insertBeforeNode(ch, children[i])
}

// InsertBefore inserts ch as a child of n, directly before the reference
// child ref. With a nil reference it appends. Returns n for chaining.
func (n *Node) InsertBefore(ch *Node, ref *Node) *Node {
	if n == nil || ch == nil {
		return n
	}
	if ref == nil || ref.h.Parent != n.h {
		return n.AppendChild(ch)
	}
	return n.insertBeforeNode(ch, ref)
}

func (n *Node) insertBeforeNode(ch *Node, ref *Node) *Node {
	if ch.h == ref.h || isAncestorOf(ch.h, n.h) {
		return n // inserting a node before itself, or into its own subtree
	}
	wasLive := n.doc.attached(n.h) || n.doc.attached(ch.h)
	detach(ch.h)
	n.h.InsertBefore(ch.h, ref.h)
	if wasLive {
		n.doc.notify()
	}
	return n
}

// InsertAfter inserts ch as a child of n, directly after the reference
// child ref. With a nil reference it appends. Returns n for chaining.
func (n *Node) InsertAfter(ch *Node, ref *Node) *Node {
	if n == nil || ch == nil {
		return n
	}
	if ref == nil || ref.h.Parent != n.h {
		return n.AppendChild(ch)
	}
	next := ref.h.NextSibling
	if next == ch.h { // ch already follows ref; skip over it
		next = next.NextSibling
	}
	if next == nil {
		return n.AppendChild(ch)
	}
	return n.insertBeforeNode(ch, n.doc.nodeFor(next))
}

// Remove detaches the node from its parent. Detached nodes keep their
// listeners and may be re-attached later. A no-op for already detached
// nodes.
func (n *Node) Remove() {
	if n == nil || n.h.Parent == nil {
		return
	}
	wasLive := n.doc.attached(n.h)
	detach(n.h)
	if wasLive {
		n.doc.notify()
	}
}

// ReplaceWith substitutes other for n in the tree. The replaced node is
// detached and loses its listener registrations. A no-op if n is detached
// or other is nil.
func (n *Node) ReplaceWith(other *Node) {
	if n == nil || other == nil || n.h.Parent == nil || n.h == other.h {
		return
	}
	parent := n.h.Parent
	wasLive := n.doc.attached(n.h)
	detach(other.h)
	parent.InsertBefore(other.h, n.h)
	parent.RemoveChild(n.h)
	n.doc.dropListeners(n.h)
	if wasLive {
		n.doc.notify()
	}
}

func detach(h *html.Node) {
	if h.Parent != nil {
		h.Parent.RemoveChild(h)
	}
}

// isAncestorOf reports whether a lies on the parent chain of b.
func isAncestorOf(a, b *html.Node) bool {
	for p := b.Parent; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// --- Attributes, style, text -----------------------------------------------

// Attr returns the value of an attribute, and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.h.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, overwriting any present value.
func (n *Node) SetAttr(key, value string) {
	if n == nil {
		return
	}
	for i := range n.h.Attr {
		if n.h.Attr[i].Key == key {
			n.h.Attr[i].Val = value
			return
		}
	}
	n.h.Attr = append(n.h.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes an attribute. A no-op if absent.
func (n *Node) RemoveAttr(key string) {
	if n == nil {
		return
	}
	for i := range n.h.Attr {
		if n.h.Attr[i].Key == key {
			n.h.Attr = append(n.h.Attr[:i], n.h.Attr[i+1:]...)
			return
		}
	}
}

// Style returns the element's inline style text (the 'style' attribute),
// or the empty string.
func (n *Node) Style() string {
	s, _ := n.Attr("style")
	return s
}

// SetStyle sets the element's inline style text verbatim.
func (n *Node) SetStyle(style string) {
	n.SetAttr("style", style)
}

// Text returns the concatenated text content of the node and all of its
// descendants.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var collect func(h *html.Node)
	collect = func(h *html.Node) {
		if h.Type == html.TextNode {
			sb.WriteString(h.Data)
		}
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			collect(ch)
		}
	}
	collect(n.h)
	return sb.String()
}

// SetText replaces the node's children with a single text node.
func (n *Node) SetText(text string) {
	if n == nil {
		return
	}
	wasLive := n.doc.attached(n.h)
	for n.h.FirstChild != nil {
		n.h.RemoveChild(n.h.FirstChild)
	}
	n.h.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	if wasLive {
		n.doc.notify()
	}
}

// HTML renders the node and its subtree as HTML text.
func (n *Node) HTML() (string, error) {
	if n == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, n.h); err != nil {
		return "", err
	}
	return sb.String(), nil
}
