package hexastore

import "fmt"

// Order is one permutation of the subject, predicate and object roles.
type Order uint8

const (
	SPO Order = iota
	SOP
	PSO
	POS
	OSP
	OPS
)

// Orders lists all six permutations in tag order.
var Orders = [...]Order{SPO, SOP, PSO, POS, OSP, OPS}

type role uint8

const (
	subject role = iota
	predicate
	object
)

var orderInfo = [...]struct {
	tag   string
	roles [3]role
}{
	SPO: {"spo", [3]role{subject, predicate, object}},
	SOP: {"sop", [3]role{subject, object, predicate}},
	PSO: {"pso", [3]role{predicate, subject, object}},
	POS: {"pos", [3]role{predicate, object, subject}},
	OSP: {"osp", [3]role{object, subject, predicate}},
	OPS: {"ops", [3]role{object, predicate, subject}},
}

// Tag returns the three-byte key tag of the order.
func (o Order) Tag() string {
	if int(o) >= len(orderInfo) {
		return ""
	}
	return orderInfo[o].tag
}

func (o Order) String() string {
	if t := o.Tag(); t != "" {
		return t
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// permute returns the components of t in the order's role sequence.
func (o Order) permute(t Triple) [3]string {
	var out [3]string
	for i, r := range orderInfo[o].roles {
		out[i] = t.component(r)
	}
	return out
}

// unpermute rebuilds a triple from components in the order's role sequence.
func (o Order) unpermute(c [3]string) Triple {
	var t Triple
	for i, r := range orderInfo[o].roles {
		t.setComponent(r, c[i])
	}
	return t
}
