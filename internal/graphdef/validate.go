package graphdef

import (
	"fmt"
	"strings"
)

// Validation error codes (E200-E299)
const (
	ErrInvalidRef       = "E201" // empty node or attribute name in a reference
	ErrUnknownNode      = "E202" // connection names an undeclared node
	ErrUnknownAttribute = "E203" // connection or input names an undeclared attribute
	ErrMixedConnection  = "E204" // connection joins a node and an attribute
	ErrUnknownOp        = "E205" // evaluator op is not built in
	ErrOpArity          = "E206" // wrong number of evaluator inputs
)

// ValidationError represents a definition validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a definition's references and evaluators.
// Returns all errors found (does not fail-fast).
func Validate(d *Definition) []ValidationError {
	var errs []ValidationError

	for _, n := range d.Nodes {
		for _, a := range n.Attributes {
			if a.Eval == nil {
				continue
			}
			field := fmt.Sprintf("node.%s.attr.%s.eval", n.Name, a.Name)
			errs = append(errs, validateEval(d, n.Name, field, a.Eval)...)
		}
	}

	for i, c := range d.Connections {
		field := fmt.Sprintf("connect[%d]", i)
		errs = append(errs, validateConnection(d, field, c)...)
	}

	return errs
}

func validateEval(d *Definition, node, field string, e *EvalDef) []ValidationError {
	var errs []ValidationError

	op, ok := ops[e.Op]
	if !ok {
		errs = append(errs, ValidationError{
			Field:   field + ".op",
			Message: fmt.Sprintf("unknown op %q (must be one of %s)", e.Op, strings.Join(opNames(), ", ")),
			Code:    ErrUnknownOp,
		})
	} else if !op.accepts(len(e.Inputs)) {
		errs = append(errs, ValidationError{
			Field:   field + ".inputs",
			Message: fmt.Sprintf("op %q takes %s, got %d", e.Op, op.arity(), len(e.Inputs)),
			Code:    ErrOpArity,
		})
	}

	for i, in := range e.Inputs {
		inField := fmt.Sprintf("%s.inputs[%d]", field, i)
		ref := inputRef(node, in)
		if ref.Node() == "" || ref.Attr() == "" {
			errs = append(errs, ValidationError{
				Field:   inField,
				Message: fmt.Sprintf("invalid input reference %q", in),
				Code:    ErrInvalidRef,
			})
			continue
		}
		if !d.HasAttribute(ref.Node(), ref.Attr()) {
			errs = append(errs, ValidationError{
				Field:   inField,
				Message: fmt.Sprintf("input %s is not a declared attribute", ref),
				Code:    ErrUnknownAttribute,
			})
		}
	}
	return errs
}

func validateConnection(d *Definition, field string, c ConnectionDef) []ValidationError {
	fromAttr := strings.Contains(c.From, ".")
	toAttr := strings.Contains(c.To, ".")
	if fromAttr != toAttr {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("cannot connect %q to %q: endpoints must both be nodes or both be attributes", c.From, c.To),
			Code:    ErrMixedConnection,
		}}
	}

	var errs []ValidationError
	for _, end := range []struct{ name, ref string }{{"from", c.From}, {"to", c.To}} {
		if err, ok := validateEndpoint(d, field+"."+end.name, end.ref); !ok {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateEndpoint(d *Definition, field, ref string) (ValidationError, bool) {
	node, attr, isAttr := strings.Cut(ref, ".")
	if node == "" || (isAttr && attr == "") {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("invalid reference %q", ref),
			Code:    ErrInvalidRef,
		}, false
	}
	if isAttr {
		if !d.HasAttribute(node, attr) {
			return ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s is not a declared attribute", ref),
				Code:    ErrUnknownAttribute,
			}, false
		}
		return ValidationError{}, true
	}
	if _, ok := d.Node(node); !ok {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is not a declared node", ref),
			Code:    ErrUnknownNode,
		}, false
	}
	return ValidationError{}, true
}
