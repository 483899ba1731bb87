package hexastore

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Triple is one fact.
type Triple struct {
	Subject   string `json:"s"`
	Predicate string `json:"p"`
	Object    string `json:"o"`
}

func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
}

// normalize returns t with every component in Unicode NFC, so canonically
// equivalent spellings share keys.
func (t Triple) normalize() Triple {
	return Triple{
		Subject:   norm.NFC.String(t.Subject),
		Predicate: norm.NFC.String(t.Predicate),
		Object:    norm.NFC.String(t.Object),
	}
}

func (t Triple) component(r role) string {
	switch r {
	case subject:
		return t.Subject
	case predicate:
		return t.Predicate
	default:
		return t.Object
	}
}

func (t *Triple) setComponent(r role, v string) {
	switch r {
	case subject:
		t.Subject = v
	case predicate:
		t.Predicate = v
	default:
		t.Object = v
	}
}
