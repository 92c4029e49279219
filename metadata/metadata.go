package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a JSON null.
	KindNull
	// KindBool represents a boolean value.
	KindBool
	// KindNumber represents a numeric value (stored as float64, JSON semantics).
	KindNumber
	// KindString represents a string value.
	KindString
	// KindArray represents an ordered sequence of values.
	KindArray
	// KindObject represents a nested string-keyed mapping.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(k))
	}
}

// Value is a small tagged value used for vector metadata.
//
// The engine never branches on metadata contents; values are stored on insert
// and returned verbatim on read. The tagged representation keeps the type set
// closed (null/bool/number/string/array/object) without interface{} plumbing
// inside the store.
type Value struct {
	Kind Kind
	B    bool
	F64  float64
	S    string
	A    []Value
	O    Document
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{Kind: KindNumber, F64: f} }

// Int returns a numeric Value from an int.
func Int(i int) Value { return Value{Kind: KindNumber, F64: float64(i)} }

// String returns a string Value.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Array returns an array Value.
func Array(vals ...Value) Value { return Value{Kind: KindArray, A: vals} }

// Object returns a nested object Value.
func Object(doc Document) Value { return Value{Kind: KindObject, O: doc} }

// FromAny converts a JSON-decoded Go value into a Value.
// Supported inputs are nil, bool, numeric types, string, []interface{}
// and map[string]interface{}.
func FromAny(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Int(t), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("metadata: invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case []interface{}:
		arr := make([]Value, len(t))
		for i, elem := range t {
			ev, err := FromAny(elem)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{Kind: KindArray, A: arr}, nil
	case map[string]interface{}:
		doc, err := FromAnyMap(t)
		if err != nil {
			return Value{}, err
		}
		return Object(doc), nil
	default:
		return Value{}, fmt.Errorf("metadata: unsupported value type %T", v)
	}
}

// Interface converts the Value back into the plain Go form produced by
// encoding/json (nil, bool, float64, string, []interface{},
// map[string]interface{}).
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.B
	case KindNumber:
		return v.F64
	case KindString:
		return v.S
	case KindArray:
		arr := make([]interface{}, len(v.A))
		for i, elem := range v.A {
			arr[i] = elem.Interface()
		}
		return arr
	case KindObject:
		return v.O.Interface()
	default:
		return nil
	}
}

// Clone returns a deep copy of the Value.
func (v Value) Clone() Value {
	out := v
	if len(v.A) > 0 {
		out.A = make([]Value, len(v.A))
		for i, elem := range v.A {
			out.A[i] = elem.Clone()
		}
	}
	if v.O != nil {
		out.O = v.O.Clone()
	}
	return out
}

// MarshalJSON implements json.Marshaler. Values serialize to their native
// JSON form, not to a tagged envelope.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Document is a string-keyed metadata mapping attached to a vector record.
type Document map[string]Value

// FromAnyMap converts a JSON-decoded map into a Document.
func FromAnyMap(m map[string]interface{}) (Document, error) {
	if m == nil {
		return nil, nil
	}
	doc := make(Document, len(m))
	for k, raw := range m {
		val, err := FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("metadata: key %q: %w", k, err)
		}
		doc[k] = val
	}
	return doc, nil
}

// Interface converts the Document into a plain map as produced by
// encoding/json.
func (d Document) Interface() map[string]interface{} {
	if d == nil {
		return nil
	}
	out := make(map[string]interface{}, len(d))
	for k, v := range d {
		out[k] = v.Interface()
	}
	return out
}

// Clone returns a deep copy of the Document. A nil Document clones to nil.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v.Clone()
	}
	return out
}

// Keys returns the document keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Value(d))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	doc, err := FromAnyMap(raw)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
