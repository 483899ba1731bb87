package graphdef

import (
	"errors"
	"fmt"

	"github.com/roach88/wires/internal/graph"
)

// Build applies the definition to g: nodes, attributes, initial values and
// evaluators first, then connections. An invalid definition is rejected
// before g is touched.
func (d *Definition) Build(g *graph.Graph) error {
	if verrs := Validate(d); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, e := range verrs {
			errs[i] = e
		}
		return fmt.Errorf("invalid graph definition: %w", errors.Join(errs...))
	}

	for _, n := range d.Nodes {
		g.AddNode(n.Name)
		for _, a := range n.Attributes {
			g.AddAttribute(n.Name, a.Name)
			if a.Initial != nil {
				if err := g.SetValue(n.Name, a.Name, a.Initial); err != nil {
					return err
				}
			}
			if a.Eval != nil {
				fn, err := evaluator(n.Name, a.Name, a.Eval)
				if err != nil {
					return err
				}
				g.SetEvaluator(n.Name, a.Name, fn)
			}
		}
	}

	for _, c := range d.Connections {
		g.Connect(graph.ParseRef(c.From), graph.ParseRef(c.To))
	}
	return nil
}
