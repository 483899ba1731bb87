package graph

import (
	"io"
	"log/slog"

	"github.com/roach88/wires/internal/value"
)

// Evaluator computes an attribute's value on demand. It is expected to
// finish by calling SetValue on the attribute it is bound to, typically
// after pulling other values from g.
type Evaluator func(g *Graph) error

// attribute is the record behind an attribute Ref.
type attribute struct {
	ref       Ref
	slot      value.Slot
	evaluator Evaluator
	observers []observerEntry
}

// edge is a directed connection, used for set semantics on Connect.
type edge struct {
	from Ref
	to   Ref
}

// Graph is the attribute dependency graph.
//
// Connections are indexed twice: forward (source to destinations) and
// reverse (destination to sources). Both indices are updated together and
// preserve insertion order.
type Graph struct {
	logger *slog.Logger

	nodes          map[string]struct{}
	attributes     map[Ref]*attribute
	nodeAttributes map[string][]string // node -> attribute names, declaration order

	forward map[Ref][]Ref
	reverse map[Ref][]Ref
	edges   map[edge]struct{}
	order   []edge

	observerOwners map[ObserverID]Ref

	resolving  map[Ref]struct{} // attributes on the current pull stack
	evaluating map[Ref]struct{} // attributes whose evaluator is running
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug tracing of evaluation.
// The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		nodes:          make(map[string]struct{}),
		attributes:     make(map[Ref]*attribute),
		nodeAttributes: make(map[string][]string),
		forward:        make(map[Ref][]Ref),
		reverse:        make(map[Ref][]Ref),
		edges:          make(map[edge]struct{}),
		observerOwners: make(map[ObserverID]Ref),
		resolving:      make(map[Ref]struct{}),
		evaluating:     make(map[Ref]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode declares a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = struct{}{}
}

// AddAttribute declares attribute attr on node. Adding an existing
// attribute is a no-op. The node does not have to be declared first.
func (g *Graph) AddAttribute(node, attr string) {
	g.ensureAttribute(AttrRef(node, attr))
}

// SetEvaluator binds fn to the attribute, creating the attribute if needed
// and replacing any previous evaluator. A nil fn removes the evaluator.
func (g *Graph) SetEvaluator(node, attr string, fn Evaluator) {
	a := g.ensureAttribute(AttrRef(node, attr))
	a.evaluator = fn
}

func (g *Graph) ensureAttribute(ref Ref) *attribute {
	if a, ok := g.attributes[ref]; ok {
		return a
	}
	a := &attribute{ref: ref}
	g.attributes[ref] = a
	g.nodeAttributes[ref.node] = append(g.nodeAttributes[ref.node], ref.attr)
	return a
}
