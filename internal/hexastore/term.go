package hexastore

import "golang.org/x/text/unicode/norm"

// Wildcard is the textual form of an unbound term.
const Wildcard = "*"

// Term is one role of a query pattern: either a bound value or unbound.
type Term struct {
	value string
	bound bool
}

// Any matches every value.
var Any = Term{}

// Bound matches exactly v.
func Bound(v string) Term {
	return Term{value: v, bound: true}
}

// ParseTerm reads the command-line form of a term: "*" is Any, anything
// else is bound.
func ParseTerm(s string) Term {
	if s == Wildcard {
		return Any
	}
	return Bound(s)
}

// IsBound reports whether the term names a value.
func (t Term) IsBound() bool { return t.bound }

// Value returns the bound value, or "" for Any.
func (t Term) Value() string { return t.value }

func (t Term) String() string {
	if !t.bound {
		return Wildcard
	}
	return t.value
}

func (t Term) normalize() Term {
	if !t.bound {
		return t
	}
	return Bound(norm.NFC.String(t.value))
}
