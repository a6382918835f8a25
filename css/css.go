/*
Package css provides stylesheet injection helpers for a dom.Document.

These are thin collaborators of the watcher and element builders: find or
create a singleton style element identified by ID, set its raw style text,
and parse style declarations. Stylesheet text passes through the douceur
parser before injection, so malformed CSS is reported instead of silently
entering the document.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/npillmayer/domq/dom"
)

// Declaration is one CSS property/value pair of an inline style.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Ensure finds or creates a singleton <style> element with the given ID
// and sets its text to cssText. The element is appended to the document
// head, falling back to the body for head-less fragments. Malformed CSS
// is rejected with the parser's error and nothing is injected.
func Ensure(doc *dom.Document, id string, cssText string) (*dom.Node, error) {
	if _, err := parser.Parse(cssText); err != nil {
		return nil, err
	}
	style := singleton(doc, "style", id)
	style.SetText(cssText)
	return style, nil
}

// EnsureLink finds or creates a singleton stylesheet <link> element with
// the given ID, pointing at href.
func EnsureLink(doc *dom.Document, id string, href string) *dom.Node {
	link := singleton(doc, "link", id)
	link.SetAttr("rel", "stylesheet")
	link.SetAttr("href", href)
	return link
}

// singleton returns the element with the given ID, creating and attaching
// a new one of the given tag type if absent.
func singleton(doc *dom.Document, tag string, id string) *dom.Node {
	if el := doc.QueryFirst("#" + id); el != nil {
		return el
	}
	el := doc.CreateElement(tag)
	el.SetAttr("id", id)
	parent := doc.Head()
	if parent == nil {
		parent = doc.Body()
	}
	if parent != nil {
		parent.AppendChild(el)
	}
	return el
}

// Declarations parses inline style text ("color: red; display: none")
// into its declarations.
func Declarations(styleText string) ([]Declaration, error) {
	parsed, err := parser.ParseDeclarations(styleText)
	if err != nil {
		return nil, err
	}
	return wrapDeclarations(parsed), nil
}

func wrapDeclarations(parsed []*douceur.Declaration) []Declaration {
	decls := make([]Declaration, 0, len(parsed))
	for _, d := range parsed {
		decls = append(decls, Declaration{
			Property:  d.Property,
			Value:     d.Value,
			Important: d.Important,
		})
	}
	return decls
}
