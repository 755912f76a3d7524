package attr

import (
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// ValueType enumerates the JSON-like types a Value can hold.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// String returns the lowercase JSON name of the type.
func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON-like attribute value: null, bool, number,
// string, array, or object. The zero Value is null. Numbers are stored as
// float64, matching the default decoding of JSON numbers.
//
// Constructors copy any mutable input; accessors never expose internal
// slices or maps directly.
type Value struct {
	t ValueType
	b bool
	n float64
	s string
	a []Value
	o map[string]Value
}

// Null returns the null Value. Equivalent to the zero Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{t: TypeBool, b: b} }

// Int returns a numeric Value from an int.
func Int(n int) Value { return Value{t: TypeNumber, n: float64(n)} }

// Float64 returns a numeric Value.
func Float64(f float64) Value { return Value{t: TypeNumber, n: f} }

// String returns a string Value.
func String(s string) Value { return Value{t: TypeString, s: s} }

// Array returns an array Value holding the given items.
func Array(items ...Value) Value {
	a := make([]Value, len(items))
	copy(a, items)
	return Value{t: TypeArray, a: a}
}

// Object returns an object Value holding a copy of the given fields.
func Object(fields map[string]Value) Value {
	o := make(map[string]Value, len(fields))
	for k, v := range fields {
		o[k] = v
	}
	return Value{t: TypeObject, o: o}
}

// FromAny converts a decoded JSON tree (nil, bool, float64, json.Number,
// string, []any, map[string]any) into a Value. Integer Go scalars are
// accepted for convenience with YAML-decoded trees. Any other Go value is
// converted through a JSON marshal/unmarshal round trip; values that cannot
// be marshaled become null.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case float64:
		return Float64(t)
	case float32:
		return Float64(float64(t))
	case int:
		return Float64(float64(t))
	case int64:
		return Float64(float64(t))
	case uint64:
		return Float64(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Null()
		}
		return Float64(f)
	case string:
		return String(t)
	case []any:
		a := make([]Value, len(t))
		for i := range t {
			a[i] = FromAny(t[i])
		}
		return Value{t: TypeArray, a: a}
	case map[string]any:
		o := make(map[string]Value, len(t))
		for k, vv := range t {
			o[k] = FromAny(vv)
		}
		return Value{t: TypeObject, o: o}
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return Null()
		}
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return Null()
		}
		return FromAny(tree)
	}
}

// AsAny deep-copies the Value back into a generic JSON tree.
func (v Value) AsAny() any {
	switch v.t {
	case TypeNull:
		return nil
	case TypeBool:
		return v.b
	case TypeNumber:
		return v.n
	case TypeString:
		return v.s
	case TypeArray:
		a := make([]any, len(v.a))
		for i := range v.a {
			a[i] = v.a[i].AsAny()
		}
		return a
	case TypeObject:
		o := make(map[string]any, len(v.o))
		for k, vv := range v.o {
			o[k] = vv.AsAny()
		}
		return o
	default:
		return nil
	}
}

// Type reports the JSON-like type of the Value.
func (v Value) Type() ValueType { return v.t }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.t == TypeNull }

// BoolValue returns the boolean content, or false for non-bool values.
func (v Value) BoolValue() bool { return v.t == TypeBool && v.b }

// Float64Value returns the numeric content, or 0 for non-number values.
func (v Value) Float64Value() float64 {
	if v.t != TypeNumber {
		return 0
	}
	return v.n
}

// IntValue returns the numeric content truncated to int, or 0 for
// non-number values.
func (v Value) IntValue() int {
	if v.t != TypeNumber {
		return 0
	}
	return int(v.n)
}

// StringValue returns the string content, or "" for non-string values.
func (v Value) StringValue() string {
	if v.t != TypeString {
		return ""
	}
	return v.s
}

// Count returns the number of elements of an array or fields of an object,
// and 0 for every scalar.
func (v Value) Count() int {
	switch v.t {
	case TypeArray:
		return len(v.a)
	case TypeObject:
		return len(v.o)
	default:
		return 0
	}
}

// Keys returns the sorted field names of an object Value, or nil.
func (v Value) Keys() []string {
	if v.t != TypeObject {
		return nil
	}
	ks := make([]string, 0, len(v.o))
	for k := range v.o {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Index returns the i-th element of an array Value, or null when out of
// range or not an array.
func (v Value) Index(i int) Value {
	if v.t != TypeArray || i < 0 || i >= len(v.a) {
		return Null()
	}
	return v.a[i]
}

// Field returns the named field of an object Value.
func (v Value) Field(name string) (Value, bool) {
	if v.t != TypeObject {
		return Null(), false
	}
	vv, ok := v.o[name]
	return vv, ok
}

// Equal reports deep structural equality. Numbers compare by float64 value,
// so 1 and 1.0 are equal.
func (v Value) Equal(other Value) bool {
	if v.t != other.t {
		return false
	}
	switch v.t {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeNumber:
		return v.n == other.n
	case TypeString:
		return v.s == other.s
	case TypeArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if len(v.o) != len(other.o) {
			return false
		}
		for k, vv := range v.o {
			ov, ok := other.o[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// JSONString renders the Value as compact JSON.
func (v Value) JSONString() string {
	data, err := v.MarshalJSON()
	if err != nil {
		// Unreachable for values built through this package.
		return "null"
	}
	return string(data)
}

// String implements fmt.Stringer using the JSON representation.
func (v Value) String() string { return v.JSONString() }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.t {
	case TypeNull:
		return []byte("null"), nil
	case TypeBool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case TypeNumber:
		return []byte(strconv.FormatFloat(v.n, 'g', -1, 64)), nil
	case TypeString:
		return json.Marshal(v.s)
	default:
		return json.Marshal(v.AsAny())
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}
	*v = FromAny(tree)
	return nil
}
