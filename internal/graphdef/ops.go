package graphdef

import (
	"fmt"
	"slices"

	"github.com/roach88/wires/internal/graph"
	"github.com/roach88/wires/internal/value"
)

// op is a built-in evaluator: it folds its pulled inputs into one value.
type op struct {
	min, max int // max < 0 means unbounded
	fold     func(acc, next value.Value) (value.Value, error)
}

func (o op) accepts(n int) bool {
	return n >= o.min && (o.max < 0 || n <= o.max)
}

func (o op) arity() string {
	switch {
	case o.min == o.max:
		return fmt.Sprintf("exactly %d input(s)", o.min)
	case o.max < 0:
		return fmt.Sprintf("at least %d input(s)", o.min)
	default:
		return fmt.Sprintf("%d to %d inputs", o.min, o.max)
	}
}

var ops = map[string]op{
	"sum":     {min: 1, max: -1, fold: value.Add},
	"product": {min: 1, max: -1, fold: value.Mul},
	"concat":  {min: 1, max: -1, fold: value.Concat},
	"copy":    {min: 1, max: 1},
}

func opNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// evaluator returns the graph evaluator for node.attr: it pulls every
// input in order, folds them left to right, and stores the result on
// node.attr.
func evaluator(node, attr string, e *EvalDef) (graph.Evaluator, error) {
	o, ok := ops[e.Op]
	if !ok {
		return nil, fmt.Errorf("unknown op %q", e.Op)
	}
	refs := make([]graph.Ref, len(e.Inputs))
	for i, in := range e.Inputs {
		refs[i] = inputRef(node, in)
	}

	return func(g *graph.Graph) error {
		var acc value.Value
		for i, ref := range refs {
			v, err := g.ValueOf(ref)
			if err != nil {
				return err
			}
			if i == 0 {
				acc = v
				continue
			}
			if acc, err = o.fold(acc, v); err != nil {
				return fmt.Errorf("%s: %w", e.Op, err)
			}
		}
		return g.SetValue(node, attr, acc)
	}, nil
}
