package value

import "fmt"

// TypeMismatchError reports a store into a slot locked to another type.
type TypeMismatchError struct {
	Have Type
	Got  Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("slot holds %s, cannot store %s", e.Have, e.Got)
}

// Slot holds at most one Value. The Type of the first stored value is
// captured and every later Store must supply the same Type.
//
// The zero Slot is empty and ready to use.
type Slot struct {
	typ Type
	val Value
}

// Store replaces the slot's value. It returns a *TypeMismatchError and
// leaves the slot unchanged if v's Type differs from the captured Type.
func (s *Slot) Store(v Value) error {
	if v == nil {
		return fmt.Errorf("cannot store nil value")
	}
	if s.val != nil && s.typ != v.Type() {
		return &TypeMismatchError{Have: s.typ, Got: v.Type()}
	}
	s.typ = v.Type()
	s.val = v
	return nil
}

// Load returns the stored value and whether one has been stored.
func (s *Slot) Load() (Value, bool) {
	return s.val, s.val != nil
}

// Type returns the captured type, or "" for an empty slot.
func (s *Slot) Type() Type {
	return s.typ
}

// Empty reports whether nothing has been stored yet.
func (s *Slot) Empty() bool {
	return s.val == nil
}
