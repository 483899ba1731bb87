package graph

import (
	"fmt"

	"github.com/roach88/wires/internal/value"
)

// SetValue stores v on node.attr and notifies the attribute's observers.
//
// It fails with NOT_FOUND if the attribute was never declared, with
// INVALID_VALUE if v is nil, and with TYPE_MISMATCH if the attribute
// already holds a value of another type. In each case nothing is stored
// and no observer runs.
//
// When called by the attribute's own evaluator during a pull, the value is
// stored without notifying observers.
func (g *Graph) SetValue(node, attr string, v value.Value) error {
	ref := AttrRef(node, attr)
	a, ok := g.attributes[ref]
	if !ok {
		return notFoundError(ref)
	}
	if v == nil {
		return invalidValueError(ref)
	}
	if err := a.slot.Store(v); err != nil {
		g.logger.Debug("write dropped", "ref", ref.String(), "error", err)
		return typeMismatchError(ref, err)
	}

	if _, ok := g.evaluating[ref]; ok {
		return nil
	}
	g.notify(a, v)
	return nil
}

// Value pulls the current value of node.attr. See the package documentation
// for the resolution order.
func (g *Graph) Value(node, attr string) (value.Value, error) {
	return g.resolve(AttrRef(node, attr))
}

// ValueOf pulls the value of an attribute reference.
func (g *Graph) ValueOf(ref Ref) (value.Value, error) {
	if !ref.IsAttribute() {
		return nil, notFoundError(ref)
	}
	return g.resolve(ref)
}

// Get pulls node.attr and asserts it holds a T.
func Get[T value.Value](g *Graph, node, attr string) (T, error) {
	var zero T
	v, err := g.Value(node, attr)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, typeMismatchError(AttrRef(node, attr),
			fmt.Errorf("attribute holds %s, requested %s", v.Type(), typeNameOf[T]()))
	}
	return t, nil
}

func typeNameOf[T value.Value]() string {
	var zero T
	if v, ok := any(zero).(value.Value); ok && v != nil {
		return string(v.Type())
	}
	return "value"
}

func (g *Graph) resolve(ref Ref) (value.Value, error) {
	a, ok := g.attributes[ref]
	if !ok {
		return nil, notFoundError(ref)
	}
	if _, busy := g.resolving[ref]; busy {
		return nil, cycleError(ref)
	}
	g.resolving[ref] = struct{}{}
	defer delete(g.resolving, ref)

	if src, ok := g.upstream(ref); ok {
		g.logger.Debug("following connection", "ref", ref.String(), "source", src.String())
		return g.resolve(src)
	}

	if a.evaluator != nil {
		g.logger.Debug("evaluating", "ref", ref.String())
		if err := g.evaluate(a); err != nil {
			return nil, evaluatorError(ref, err)
		}
	}

	v, ok := a.slot.Load()
	if !ok {
		return nil, noValueError(ref)
	}
	return v, nil
}

func (g *Graph) evaluate(a *attribute) error {
	g.evaluating[a.ref] = struct{}{}
	defer delete(g.evaluating, a.ref)
	return a.evaluator(g)
}
