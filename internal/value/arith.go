package value

import "fmt"

// Add returns a + b for numeric values. Mixed Int/Float promotes to Float.
func Add(a, b Value) (Value, error) {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x + y, nil
		case Float:
			return Float(x) + y, nil
		}
	case Float:
		switch y := b.(type) {
		case Int:
			return x + Float(y), nil
		case Float:
			return x + y, nil
		}
	case Matrix44:
		if y, ok := b.(Matrix44); ok {
			var out Matrix44
			for i := range out {
				out[i] = x[i] + y[i]
			}
			return out, nil
		}
	}
	return nil, unsupported("add", a, b)
}

// Mul returns a * b. Matrices multiply as matrices.
func Mul(a, b Value) (Value, error) {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x * y, nil
		case Float:
			return Float(x) * y, nil
		}
	case Float:
		switch y := b.(type) {
		case Int:
			return x * Float(y), nil
		case Float:
			return x * y, nil
		}
	case Matrix44:
		if y, ok := b.(Matrix44); ok {
			return x.Mul(y), nil
		}
	}
	return nil, unsupported("multiply", a, b)
}

// Concat joins two strings.
func Concat(a, b Value) (Value, error) {
	x, ok1 := a.(String)
	y, ok2 := b.(String)
	if !ok1 || !ok2 {
		return nil, unsupported("concat", a, b)
	}
	return x + y, nil
}

func unsupported(op string, a, b Value) error {
	return fmt.Errorf("cannot %s %s and %s", op, typeName(a), typeName(b))
}

func typeName(v Value) Type {
	if v == nil {
		return "nil"
	}
	return v.Type()
}
