package css_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/domq/css"
	"github.com/npillmayer/domq/dom"
)

func TestEnsureCreatesSingleton(t *testing.T) {
	doc := dom.New()
	el, err := css.Ensure(doc, "app-style", "body { margin: 0; }")
	if err != nil {
		t.Fatalf("expected valid CSS to be injected, got %v", err)
	}
	if el.Tag() != "style" {
		t.Errorf("expected a style element, have %q", el.Tag())
	}
	if !el.IsAttached() {
		t.Error("expected injected style element to be attached")
	}
	// A second call finds the same element instead of creating another.
	el2, err := css.Ensure(doc, "app-style", "body { margin: 1px; }")
	if err != nil {
		t.Fatalf("unexpected error on re-ensure: %v", err)
	}
	if !el.Equals(el2) {
		t.Error("expected Ensure to reuse the singleton element")
	}
	if len(doc.Query("style")) != 1 {
		t.Errorf("expected exactly one style element, have %d", len(doc.Query("style")))
	}
	if !strings.Contains(el2.Text(), "1px") {
		t.Error("expected the style text to be updated")
	}
}

func TestEnsureRejectsMalformedCSS(t *testing.T) {
	doc := dom.New()
	if _, err := css.Ensure(doc, "bad", "body { color: red"); err == nil {
		t.Error("expected malformed CSS to be rejected, wasn't")
	}
	if len(doc.Query("style")) != 0 {
		t.Error("rejected CSS must not be injected")
	}
}

func TestEnsureLink(t *testing.T) {
	doc := dom.New()
	link := css.EnsureLink(doc, "cdn-css", "https://cdn.example.org/x.css")
	if link.Tag() != "link" {
		t.Errorf("expected a link element, have %q", link.Tag())
	}
	if rel, _ := link.Attr("rel"); rel != "stylesheet" {
		t.Errorf("expected rel=stylesheet, have %q", rel)
	}
	link2 := css.EnsureLink(doc, "cdn-css", "https://cdn.example.org/x.css")
	if !link.Equals(link2) {
		t.Error("expected EnsureLink to reuse the singleton element")
	}
}

func TestDeclarations(t *testing.T) {
	decls, err := css.Declarations("color: red; display: none !important")
	if err != nil {
		t.Fatalf("expected inline style to parse, got %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, have %d", len(decls))
	}
	if decls[0].Property != "color" || decls[0].Value != "red" {
		t.Errorf("unexpected first declaration: %+v", decls[0])
	}
	if !decls[1].Important {
		t.Error("expected the display declaration to be !important")
	}
}
