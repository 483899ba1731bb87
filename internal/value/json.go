package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the tagged JSON form of a Value.
type envelope struct {
	Type  Type            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Marshal encodes v as {"type":"int","value":3}.
// Opaque values have no portable encoding and are rejected.
func Marshal(v Value) ([]byte, error) {
	var payload any
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("cannot marshal nil value")
	case Int:
		payload = int64(val)
	case Float:
		payload = float64(val)
	case String:
		payload = string(val)
	case Bool:
		payload = bool(val)
	case Matrix44:
		payload = val[:]
	case Opaque:
		return nil, fmt.Errorf("cannot marshal opaque value %q", val.Name)
	default:
		return nil, fmt.Errorf("unknown value type: %T", v)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", v.Type(), err)
	}
	return json.Marshal(envelope{Type: v.Type(), Value: raw})
}

// Unmarshal decodes the tagged form produced by Marshal.
func Unmarshal(data []byte) (Value, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	if len(env.Value) == 0 {
		return nil, fmt.Errorf("value field is required")
	}

	switch env.Type {
	case TypeInt:
		var n int64
		if err := json.Unmarshal(env.Value, &n); err != nil {
			return nil, fmt.Errorf("decode int: %w", err)
		}
		return Int(n), nil
	case TypeFloat:
		var f float64
		if err := json.Unmarshal(env.Value, &f); err != nil {
			return nil, fmt.Errorf("decode float: %w", err)
		}
		return Float(f), nil
	case TypeString:
		var s string
		if err := json.Unmarshal(env.Value, &s); err != nil {
			return nil, fmt.Errorf("decode string: %w", err)
		}
		return String(s), nil
	case TypeBool:
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return nil, fmt.Errorf("decode bool: %w", err)
		}
		return Bool(b), nil
	case TypeMatrix44:
		var elems []float64
		if err := json.Unmarshal(env.Value, &elems); err != nil {
			return nil, fmt.Errorf("decode matrix44: %w", err)
		}
		return FromGo(elems)
	default:
		return nil, fmt.Errorf("unknown value type %q", env.Type)
	}
}

// JSON wraps a Value so it can be embedded in structs passed to
// encoding/json, e.g. CLI responses and trace events.
type JSON struct {
	Value
}

// MarshalJSON implements json.Marshaler.
func (j JSON) MarshalJSON() ([]byte, error) {
	if j.Value == nil {
		return []byte("null"), nil
	}
	if o, ok := j.Value.(Opaque); ok {
		return json.Marshal(envelope{Type: o.Type(), Value: json.RawMessage(`null`)})
	}
	return Marshal(j.Value)
}
