// Package report prints diagnostic views of a graph.
//
// Output is for humans. It is stable enough for golden tests but is not a
// machine-readable format.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/value"
)

const indentStep = 3

// printer remembers the first write error so callers can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(indent int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", indent), fmt.Sprintf(format, args...))
}

// Report prints the node list, the forward tree from every root, the
// reverse tree from every terminal, and the attributes of every node.
func Report(w io.Writer, g *graph.Graph) error {
	p := &printer{w: w}

	p.line(0, ">> graph nodes")
	for _, n := range g.Nodes() {
		p.line(indentStep, "%s", n)
	}

	p.line(0, "----- in -> out ---------------")
	for _, root := range g.Roots() {
		inToOut(p, g, root, 0, map[graph.Ref]bool{})
	}

	p.line(0, "----- out -> in ---------------")
	for _, leaf := range g.Terminals() {
		outToIn(p, g, leaf, 0, map[graph.Ref]bool{})
	}

	titled := false
	for _, n := range g.Nodes() {
		if len(g.Attributes(n)) == 0 {
			continue
		}
		if !titled {
			p.line(0, "----- attributes on nodes -----")
			titled = true
		}
		attributes(p, g, n, 0)
	}
	p.line(0, "===============================")
	return p.err
}

// InToOut prints ref and, depth first, everything it feeds.
func InToOut(w io.Writer, g *graph.Graph, ref graph.Ref, indent int) error {
	p := &printer{w: w}
	inToOut(p, g, ref, indent, map[graph.Ref]bool{})
	return p.err
}

// OutToIn prints ref and, depth first, everything that feeds it.
func OutToIn(w io.Writer, g *graph.Graph, ref graph.Ref, indent int) error {
	p := &printer{w: w}
	outToIn(p, g, ref, indent, map[graph.Ref]bool{})
	return p.err
}

// Attributes prints node followed by one line per attribute. Int, float and
// string values are shown as name:value; anything else, including
// attributes whose value cannot be pulled, shows the bare name. Nothing is
// printed for a node without attributes.
func Attributes(w io.Writer, g *graph.Graph, node string, indent int) error {
	p := &printer{w: w}
	attributes(p, g, node, indent)
	return p.err
}

func inToOut(p *printer, g *graph.Graph, ref graph.Ref, indent int, path map[graph.Ref]bool) {
	walk(p, ref, indent, path, g.Succ)
}

func outToIn(p *printer, g *graph.Graph, ref graph.Ref, indent int, path map[graph.Ref]bool) {
	walk(p, ref, indent, path, g.Pred)
}

// walk stops at refs already on the current path; reporting a cyclic
// graph prints a marker instead of recursing forever.
func walk(p *printer, ref graph.Ref, indent int, path map[graph.Ref]bool, next func(graph.Ref) []graph.Ref) {
	if path[ref] {
		p.line(indent, "%s (cycle)", ref)
		return
	}
	p.line(indent, "%s", ref)
	path[ref] = true
	for _, n := range next(ref) {
		walk(p, n, indent+indentStep, path, next)
	}
	delete(path, ref)
}

func attributes(p *printer, g *graph.Graph, node string, indent int) {
	names := g.Attributes(node)
	if len(names) == 0 {
		return
	}
	p.line(indent, "%s", node)
	for _, name := range names {
		v, err := g.Value(node, name)
		if err != nil || !value.IsPrimitive(v) {
			p.line(indent+indentStep, "%s", name)
			continue
		}
		p.line(indent+indentStep, "%s:%s", name, value.Format(v))
	}
}
