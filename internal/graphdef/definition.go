package graphdef

import (
	"strings"

	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/value"
)

// Definition is a compiled graph definition. Nodes and attributes keep
// their declaration order.
type Definition struct {
	Nodes       []NodeDef
	Connections []ConnectionDef
}

// NodeDef declares one node.
type NodeDef struct {
	Name       string
	Attributes []AttrDef
}

// AttrDef declares one attribute. Initial is nil when the attribute starts
// without a value; Eval is nil when it has no evaluator.
type AttrDef struct {
	Name    string
	Initial value.Value
	Eval    *EvalDef
}

// EvalDef binds a built-in evaluator op to its inputs.
type EvalDef struct {
	Op     string
	Inputs []string
}

// ConnectionDef is one "from -> to" connection.
type ConnectionDef struct {
	From string
	To   string
}

// Node returns the named node declaration.
func (d *Definition) Node(name string) (NodeDef, bool) {
	for _, n := range d.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return NodeDef{}, false
}

// HasAttribute reports whether node.attr is declared.
func (d *Definition) HasAttribute(node, attr string) bool {
	n, ok := d.Node(node)
	if !ok {
		return false
	}
	for _, a := range n.Attributes {
		if a.Name == attr {
			return true
		}
	}
	return false
}

// inputRef resolves an evaluator input relative to the node that owns the
// evaluator.
func inputRef(node, input string) graph.Ref {
	if strings.Contains(input, ".") {
		return graph.ParseRef(input)
	}
	return graph.AttrRef(node, input)
}
