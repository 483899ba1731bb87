package graph

// Connect adds a directed connection from one entity to another. Either end
// may be a node or an attribute. Connecting an existing pair is a no-op.
// No cycle check is performed here; cycles surface when values are pulled.
func (g *Graph) Connect(from, to Ref) {
	e := edge{from: from, to: to}
	if _, ok := g.edges[e]; ok {
		return
	}
	g.edges[e] = struct{}{}
	g.order = append(g.order, e)
	g.forward[from] = append(g.forward[from], to)
	g.reverse[to] = append(g.reverse[to], from)
}

// ConnectAttribute connects fromNode.fromAttr to toNode.toAttr, so that the
// destination's value is defined by the source's.
func (g *Graph) ConnectAttribute(fromNode, fromAttr, toNode, toAttr string) {
	g.Connect(AttrRef(fromNode, fromAttr), AttrRef(toNode, toAttr))
}

// Connection is a directed edge as returned by Connections.
type Connection struct {
	From Ref
	To   Ref
}

// Connections returns every connection in insertion order.
func (g *Graph) Connections() []Connection {
	out := make([]Connection, len(g.order))
	for i, e := range g.order {
		out[i] = Connection{From: e.from, To: e.to}
	}
	return out
}

// upstream returns the attribute that feeds ref, if any. When several
// attributes feed ref the earliest connection wins.
func (g *Graph) upstream(ref Ref) (Ref, bool) {
	for _, src := range g.reverse[ref] {
		if !src.IsAttribute() {
			continue
		}
		if _, ok := g.attributes[src]; ok {
			return src, true
		}
	}
	return Ref{}, false
}
