package graphdef

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/wires/internal/value"
)

//go:embed schema.cue
var schemaCUE string

// Compile parses a CUE value into a Definition.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The value is unified with the definition schema first, so shape errors
// such as an unknown op or a misspelled field come back as a CompileError
// carrying the CUE position.
func Compile(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := v.Context().CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("graph schema: %w", err)
	}
	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{}

	nodesVal := v.LookupPath(cue.ParsePath("node"))
	if nodesVal.Exists() {
		iter, err := nodesVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			node, err := parseNode(iter.Label(), iter.Value())
			if err != nil {
				return nil, err
			}
			def.Nodes = append(def.Nodes, node)
		}
	}

	connectVal := v.LookupPath(cue.ParsePath("connect"))
	if connectVal.Exists() {
		conns, err := parseConnections(connectVal)
		if err != nil {
			return nil, err
		}
		def.Connections = conns
	}

	return def, nil
}

func parseNode(name string, v cue.Value) (NodeDef, error) {
	node := NodeDef{Name: name}

	attrsVal := v.LookupPath(cue.ParsePath("attr"))
	if !attrsVal.Exists() {
		return node, nil
	}

	iter, err := attrsVal.Fields()
	if err != nil {
		return node, formatCUEError(err)
	}
	for iter.Next() {
		attr, err := parseAttr(name, iter.Label(), iter.Value())
		if err != nil {
			return node, err
		}
		node.Attributes = append(node.Attributes, attr)
	}
	return node, nil
}

func parseAttr(node, name string, v cue.Value) (AttrDef, error) {
	attr := AttrDef{Name: name}
	field := fmt.Sprintf("node.%s.attr.%s", node, name)

	valueVal := v.LookupPath(cue.ParsePath("value"))
	matrixVal := v.LookupPath(cue.ParsePath("matrix"))
	evalVal := v.LookupPath(cue.ParsePath("eval"))

	if valueVal.Exists() && matrixVal.Exists() {
		return attr, &CompileError{
			Field:   field,
			Message: "value and matrix are mutually exclusive",
			Pos:     v.Pos(),
		}
	}

	if valueVal.Exists() {
		initial, err := scalar(valueVal)
		if err != nil {
			return attr, err
		}
		attr.Initial = initial
	}

	if matrixVal.Exists() {
		m, err := matrix(field, matrixVal)
		if err != nil {
			return attr, err
		}
		attr.Initial = m
	}

	if evalVal.Exists() {
		eval, err := parseEval(evalVal)
		if err != nil {
			return attr, err
		}
		attr.Eval = eval
	}

	return attr, nil
}

// scalar converts a concrete CUE number, string or bool. Integral CUE
// numbers become Int; anything written with a decimal point becomes Float.
func scalar(v cue.Value) (value.Value, error) {
	switch v.Kind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.Int(n), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.String(s), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.Bool(b), nil
	default:
		return nil, &CompileError{
			Field:   "value",
			Message: fmt.Sprintf("unsupported value kind: %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

func matrix(field string, v cue.Value) (value.Value, error) {
	var m value.Matrix44

	n, err := v.Len().Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if n != int64(len(m)) {
		return nil, &CompileError{
			Field:   field + ".matrix",
			Message: fmt.Sprintf("matrix needs %d numbers, got %d", len(m), n),
			Pos:     v.Pos(),
		}
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		m[i] = f
	}
	return m, nil
}

func parseEval(v cue.Value) (*EvalDef, error) {
	op, err := v.LookupPath(cue.ParsePath("op")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	eval := &EvalDef{Op: op}

	iter, err := v.LookupPath(cue.ParsePath("inputs")).List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		in, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		eval.Inputs = append(eval.Inputs, in)
	}
	return eval, nil
}

func parseConnections(v cue.Value) ([]ConnectionDef, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var conns []ConnectionDef
	for iter.Next() {
		item := iter.Value()
		from, err := item.LookupPath(cue.ParsePath("from")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		to, err := item.LookupPath(cue.ParsePath("to")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		conns = append(conns, ConnectionDef{From: from, To: to})
	}
	return conns, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error, with position info when CUE has it
	firstErr := errs[0]
	ce := &CompileError{Field: "cue", Message: firstErr.Error()}
	if positions := errors.Positions(firstErr); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
