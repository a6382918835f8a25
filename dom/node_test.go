package dom_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/domq/dom"
)

const listPage = `<html><body><ul id="list">
  <li id="a">A</li>
  <li id="b">B</li>
  <li id="c">C</li>
</ul></body></html>`

func parseList(t *testing.T) *dom.Document {
	doc, err := dom.Parse(strings.NewReader(listPage))
	if err != nil {
		t.Fatalf("cannot parse test page: %v", err)
	}
	return doc
}

func ids(nodes []*dom.Node) []string {
	var out []string
	for _, n := range nodes {
		id, _ := n.Attr("id")
		out = append(out, id)
	}
	return out
}

func TestNodeSiblings(t *testing.T) {
	doc := parseList(t)
	b := doc.QueryFirst("#b")
	if prev := b.PrevSibling(); prev == nil || prev.Text() != "A" {
		t.Errorf("expected prev sibling of b to be A, is %v", prev)
	}
	if next := b.NextSibling(); next == nil || next.Text() != "C" {
		t.Errorf("expected next sibling of b to be C, is %v", next)
	}
	a := doc.QueryFirst("#a")
	if a.PrevSibling() != nil {
		t.Error("expected first item to have no prev element sibling, has")
	}
	if a.IndexInParent() != 0 || b.IndexInParent() != 1 {
		t.Error("expected indices 0 and 1 for a and b, aren't")
	}
}

func TestNodeAppendChildMoves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domq.dom")
	defer teardown()
	//
	doc := parseList(t)
	list := doc.QueryFirst("#list")
	a := doc.QueryFirst("#a")
	list.AppendChild(a) // move a to the end
	got := ids(list.Children())
	if len(got) != 3 || got[0] != "b" || got[2] != "a" {
		t.Logf("children = %v", got)
		t.Error("expected append to move #a behind #c, didn't")
	}
}

func TestNodeInsertChildAt(t *testing.T) {
	doc := parseList(t)
	list := doc.QueryFirst("#list")
	el := doc.CreateElement("li")
	el.SetAttr("id", "x")
	list.InsertChildAt(1, el)
	got := ids(list.Children())
	if len(got) != 4 || got[1] != "x" {
		t.Logf("children = %v", got)
		t.Error("expected #x at position 1, isn't")
	}
	el2 := doc.CreateElement("li")
	el2.SetAttr("id", "y")
	list.InsertChildAt(99, el2) // past the end => append
	got = ids(list.Children())
	if got[len(got)-1] != "y" {
		t.Logf("children = %v", got)
		t.Error("expected out-of-range insert to append, didn't")
	}
}

func TestNodeRemoveAndReattach(t *testing.T) {
	doc := parseList(t)
	b := doc.QueryFirst("#b")
	b.Remove()
	if b.IsAttached() {
		t.Error("expected #b to be detached after Remove, isn't")
	}
	if len(doc.Query("li")) != 2 {
		t.Error("expected 2 list items after removal")
	}
	b.Remove() // no-op on detached node
	doc.QueryFirst("#list").AppendChild(b)
	if !b.IsAttached() {
		t.Error("expected #b to be attached again, isn't")
	}
}

func TestNodeReplaceWith(t *testing.T) {
	doc := parseList(t)
	b := doc.QueryFirst("#b")
	repl := doc.CreateElement("li")
	repl.SetAttr("id", "z")
	b.ReplaceWith(repl)
	got := ids(doc.QueryFirst("#list").Children())
	if len(got) != 3 || got[1] != "z" {
		t.Logf("children = %v", got)
		t.Error("expected #z to replace #b, didn't")
	}
	if b.IsAttached() {
		t.Error("expected replaced node to be detached, isn't")
	}
}

func TestNodeAttributes(t *testing.T) {
	doc := parseList(t)
	a := doc.QueryFirst("#a")
	if _, ok := a.Attr("class"); ok {
		t.Error("did not expect a class attribute on #a")
	}
	a.SetAttr("class", "hot")
	if v, ok := a.Attr("class"); !ok || v != "hot" {
		t.Errorf("expected class 'hot', have %q", v)
	}
	a.SetAttr("class", "cold")
	if v, _ := a.Attr("class"); v != "cold" {
		t.Errorf("expected class overwrite to 'cold', have %q", v)
	}
	a.RemoveAttr("class")
	if _, ok := a.Attr("class"); ok {
		t.Error("expected class attribute to be removed, isn't")
	}
}

func TestNodeText(t *testing.T) {
	doc := parseList(t)
	list := doc.QueryFirst("#list")
	flat := strings.Join(strings.Fields(list.Text()), "")
	if flat != "ABC" {
		t.Errorf("expected concatenated text ABC, have %q", flat)
	}
	a := doc.QueryFirst("#a")
	a.SetText("AA")
	if a.Text() != "AA" {
		t.Errorf("expected text 'AA', have %q", a.Text())
	}
}
