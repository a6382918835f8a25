/*
Package domdbg implements helpers to debug a DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"

	"github.com/npillmayer/domq/dom"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients provide the document and a Writer.
func ToGraphViz(doc *dom.Document, w io.Writer) error {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*html.Node]string, 256)
	if err = nodes(doc.Root(), w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Print renders the document as an indented text tree, one line per
// element, with attributes inline. Intended for test logs.
func Print(doc *dom.Document) string {
	tree := tp.New()
	appendBranch(tree, doc.Root())
	return tree.String()
}

func appendBranch(branch tp.Tree, n *dom.Node) {
	for _, ch := range n.Children() {
		label := "<" + ch.Tag() + attrText(ch) + ">"
		appendBranch(branch.AddBranch(label), ch)
	}
}

func attrText(n *dom.Node) string {
	var sb strings.Builder
	for _, a := range n.HTMLNode().Attr {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
	}
	return sb.String()
}

type node struct {
	N    *dom.Node
	Name string
}

func nodes(n *dom.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	if err := domNode(n, w, dict, gparams); err != nil {
		return err
	}
	for _, ch := range n.ChildNodes() {
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		if err := domEdge(n, ch, w, dict, gparams); err != nil {
			return err
		}
	}
	return nil
}

func domNode(n *dom.Node, w io.Writer, dict map[*html.Node]string, gparams *graphParamsType) error {
	name := dict[n.HTMLNode()]
	if name == "" {
		l := len(dict) + 1
		name = fmt.Sprintf("node%05d", l)
		dict[n.HTMLNode()] = name
	}
	return gparams.NodeTmpl.Execute(w, &node{n, name})
}

type edge struct {
	N1, N2 node
}

func domEdge(n1 *dom.Node, n2 *dom.Node, w io.Writer, dict map[*html.Node]string,
	gparams *graphParamsType) error {
	//
	name1 := dict[n1.HTMLNode()]
	name2 := dict[n2.HTMLNode()]
	e := edge{node{n1, name1}, node{n2, name2}}
	return gparams.EdgeTmpl.Execute(w, e)
}

func shortText(n *dom.Node) string {
	h := n.HTMLNode()
	s := "\"\\\""
	if len(h.Data) > 10 {
		s += h.Data[:10] + "...\\\"\""
	} else {
		s += h.Data + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [{{ .Fontname }} = "helvetica" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.Tag "#text" }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .N.Tag }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
