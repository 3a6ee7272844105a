/*
Package domdbg implements helpers to debug scoped DOM trees.

Both output formats show the concrete name of every element together with the
logical name it reads back as. Elements bound to a handler are highlighted.

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
	"io/ioutil"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/scopedtags/dom"
	"github.com/xlab/treeprint"
)

// ReadBack returns the logical name of an element.
type ReadBack func(dom.Node) string

// Print renders the tree under root as indented text. Text nodes consisting of
// whitespace only are left out.
func Print(root dom.Node, readback ReadBack) string {
	tree := treeprint.NewWithRoot(label(root, readback))
	printChildren(tree, root, readback)
	return tree.String()
}

func printChildren(tree treeprint.Tree, n dom.Node, readback ReadBack) {
	for _, ch := range n.ChildNodes() {
		if !ch.IsElement() {
			if text := strings.TrimSpace(ch.TextContent()); text != "" {
				tree.AddNode(shortText(text))
			}
			continue
		}
		if len(ch.ChildNodes()) == 0 {
			tree.AddNode(label(ch, readback))
			continue
		}
		printChildren(tree.AddBranch(label(ch, readback)), ch, readback)
	}
}

func label(n dom.Node, readback ReadBack) string {
	if !n.IsElement() {
		return "#document"
	}
	l := n.LocalName()
	if readback != nil {
		if logical := strings.ToLower(readback(n)); logical != l {
			l = fmt.Sprintf("%s (%s)", l, logical)
		}
	}
	if n.IsUpgraded() {
		l += " *"
	}
	return l
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a DOM tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the DOM, a Writer, and an optional function to read back logical names.
func ToGraphViz(root dom.Node, w io.Writer, readback ReadBack) {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("domnode").Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		panic(err)
	}
	cnt := 0
	nodes(root, w, &cnt, readback, &gparams)
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a DOM node and a testing.T, it will
// create a Graphiviz image of the DOM tree under `root` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(root dom.Node, readback ReadBack, t *testing.T) {
	tmpfile, err := ioutil.TempFile(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	ToGraphViz(root, tmpfile, readback)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	Name     string
	Label    string
	Text     bool
	Upgraded bool
}

type edge struct {
	N1, N2 string
}

func nodes(n dom.Node, w io.Writer, cnt *int, readback ReadBack, gparams *graphParamsType) string {
	*cnt++
	name := fmt.Sprintf("node%05d", *cnt)
	gn := node{Name: name, Upgraded: n.IsUpgraded()}
	if n.IsElement() || len(n.ChildNodes()) > 0 {
		gn.Label = fmt.Sprintf("%q", label(n, readback))
	} else {
		gn.Text = true
		gn.Label = dotText(n.TextContent())
	}
	if err := gparams.NodeTmpl.Execute(w, gn); err != nil {
		panic(err)
	}
	for _, ch := range n.ChildNodes() {
		chname := nodes(ch, w, cnt, readback, gparams)
		if err := gparams.EdgeTmpl.Execute(w, edge{name, chname}); err != nil {
			panic(err)
		}
	}
	return name
}

func shortText(s string) string {
	if len(s) > 10 {
		s = s[:10] + "..."
	}
	return `"` + s + `"`
}

func dotText(s string) string {
	s = "\"\\\"" + strings.TrimSuffix(strings.TrimPrefix(shortText(s), `"`), `"`) + "\\\"\""
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .Text }}
{{ .Name }}	[ label={{ .Label }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if .Upgraded }}
{{ .Name }}	[ label={{ .Label }} shape=ellipse style=filled fillcolor=darkseagreen2 ] ;
{{ else }}
{{ .Name }}	[ label={{ .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`
