package graph

import (
	"slices"
	"strings"
)

type refKind uint8

const (
	nodeRef refKind = iota + 1
	attrRef
)

// Ref identifies a connectable entity: either a node or an attribute of a
// node. Refs are comparable and usable as map keys. The zero Ref is invalid.
type Ref struct {
	kind refKind
	node string
	attr string
}

// NodeRef returns a reference to the named node.
func NodeRef(node string) Ref {
	return Ref{kind: nodeRef, node: node}
}

// AttrRef returns a reference to attribute attr on node.
func AttrRef(node, attr string) Ref {
	return Ref{kind: attrRef, node: node, attr: attr}
}

// ParseRef parses "node" or "node.attr". The split happens at the first dot,
// so attribute names may contain dots but node names may not.
func ParseRef(s string) Ref {
	if node, attr, ok := strings.Cut(s, "."); ok {
		return AttrRef(node, attr)
	}
	return NodeRef(s)
}

// IsAttribute reports whether r refers to an attribute.
func (r Ref) IsAttribute() bool { return r.kind == attrRef }

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool { return r.kind == 0 }

// Node returns the node name.
func (r Ref) Node() string { return r.node }

// Attr returns the attribute name, or "" for a node reference.
func (r Ref) Attr() string { return r.attr }

// String renders r as "node" or "node.attr".
func (r Ref) String() string {
	if r.kind == attrRef {
		return r.node + "." + r.attr
	}
	return r.node
}

func sortRefs(refs []Ref) {
	slices.SortFunc(refs, func(a, b Ref) int {
		return strings.Compare(a.String(), b.String())
	})
}
