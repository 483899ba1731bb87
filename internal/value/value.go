package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a sealed interface over the attribute value kinds.
// Only Int, Float, String, Bool, Matrix44 and Opaque implement it.
type Value interface {
	Type() Type
	isValue() // sealed
}

// Type is the run-time identity of a value.
// Two values have the same Type iff a Slot would accept both.
type Type string

// Built-in types.
const (
	TypeInt      Type = "int"
	TypeFloat    Type = "float"
	TypeString   Type = "string"
	TypeBool     Type = "bool"
	TypeMatrix44 Type = "matrix44"
)

// opaquePrefix marks caller-defined types.
const opaquePrefix = "opaque:"

// Int is a 64-bit signed integer value.
type Int int64

func (Int) Type() Type { return TypeInt }
func (Int) isValue() {}

// Float is a 64-bit floating point value.
type Float float64

func (Float) Type() Type { return TypeFloat }
func (Float) isValue() {}

// String is a string value.
type String string

func (String) Type() Type { return TypeString }
func (String) isValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) Type() Type { return TypeBool }
func (Bool) isValue() {}

// Matrix44 is a row-major 4x4 matrix.
type Matrix44 [16]float64

func (Matrix44) Type() Type { return TypeMatrix44 }
func (Matrix44) isValue() {}

// Identity44 returns the 4x4 identity matrix.
func Identity44() Matrix44 {
	var m Matrix44
	for i := 0; i < 4; i++ {
		m[i*4+i] = 1
	}
	return m
}

// At returns the element at row r, column c.
func (m Matrix44) At(r, c int) float64 {
	return m[r*4+c]
}

// Mul returns the matrix product m * n.
func (m Matrix44) Mul(n Matrix44) Matrix44 {
	var out Matrix44
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Opaque carries a caller-defined value. Its Type is derived from Name,
// so two Opaque values with the same Name share a Type regardless of V.
type Opaque struct {
	Name string
	V    any
}

func (o Opaque) Type() Type { return Type(opaquePrefix + o.Name) }
func (Opaque) isValue() {}

// IsOpaque reports whether t names a caller-defined type.
func (t Type) IsOpaque() bool {
	return strings.HasPrefix(string(t), opaquePrefix)
}

// IsPrimitive reports whether v is one of the primitive display types
// (int, float, string).
func IsPrimitive(v Value) bool {
	switch v.(type) {
	case Int, Float, String:
		return true
	default:
		return false
	}
}

// Format renders v for diagnostic output.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return fmt.Sprintf("%f", float64(val))
	case String:
		return string(val)
	case Bool:
		return strconv.FormatBool(bool(val))
	case Matrix44:
		var b strings.Builder
		for r := 0; r < 4; r++ {
			if r > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "[%g %g %g %g]", val.At(r, 0), val.At(r, 1), val.At(r, 2), val.At(r, 3))
		}
		return b.String()
	case Opaque:
		return "<" + val.Name + ">"
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

// Equal reports whether a and b have the same Type and contents.
// Opaque values compare by Name and ==, so non-comparable payloads are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	if oa, ok := a.(Opaque); ok {
		ob := b.(Opaque)
		return safeEqual(oa.V, ob.V)
	}
	return a == b
}

func safeEqual(x, y any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return x == y
}

// FromGo converts a decoded YAML, CUE or JSON scalar into a Value.
// A list of exactly 16 numbers becomes a Matrix44.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not a value")
	case Value:
		return val, nil
	case int:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case []any:
		return matrixFromList(val)
	case []float64:
		if len(val) != 16 {
			return nil, fmt.Errorf("matrix44 needs 16 elements, got %d", len(val))
		}
		var m Matrix44
		copy(m[:], val)
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type: %T", v)
	}
}

func matrixFromList(list []any) (Value, error) {
	if len(list) != 16 {
		return nil, fmt.Errorf("matrix44 needs 16 elements, got %d", len(list))
	}
	var m Matrix44
	for i, elem := range list {
		switch n := elem.(type) {
		case int:
			m[i] = float64(n)
		case int64:
			m[i] = float64(n)
		case uint64:
			m[i] = float64(n)
		case float64:
			m[i] = n
		default:
			return nil, fmt.Errorf("matrix44[%d]: expected number, got %T", i, elem)
		}
	}
	return m, nil
}
