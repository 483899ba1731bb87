package graph

import "slices"

// Nodes returns all declared node names, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// HasNode reports whether name was declared with AddNode.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// HasAttribute reports whether node.attr exists.
func (g *Graph) HasAttribute(node, attr string) bool {
	_, ok := g.attributes[AttrRef(node, attr)]
	return ok
}

// Attributes returns the names of the attributes declared on node, sorted.
func (g *Graph) Attributes(node string) []string {
	out := slices.Clone(g.nodeAttributes[node])
	slices.Sort(out)
	return out
}

// Roots returns every connection source that has no incoming connection,
// sorted.
func (g *Graph) Roots() []Ref {
	var out []Ref
	for ref := range g.forward {
		if len(g.reverse[ref]) == 0 {
			out = append(out, ref)
		}
	}
	sortRefs(out)
	return out
}

// Terminals returns every connection destination that has no outgoing
// connection, sorted.
func (g *Graph) Terminals() []Ref {
	var out []Ref
	for ref := range g.reverse {
		if len(g.forward[ref]) == 0 {
			out = append(out, ref)
		}
	}
	sortRefs(out)
	return out
}

// Pred returns the immediate predecessors of ref in connection order.
func (g *Graph) Pred(ref Ref) []Ref {
	return slices.Clone(g.reverse[ref])
}

// Succ returns the immediate successors of ref in connection order.
func (g *Graph) Succ(ref Ref) []Ref {
	return slices.Clone(g.forward[ref])
}
