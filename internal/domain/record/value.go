// Package record models a submission record as an open key/value tree.
//
// The tree is a tagged union over JSON's shapes with path-based accessors
// that return an absence marker instead of failing, so validation passes
// can probe deeply nested optional structure uniformly.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Kind identifies the shape of a Value.
type Kind uint8

// Value kinds.
const (
	Absent Kind = iota
	Null
	Bool
	String
	Number
	Object
	Array
)

// Value is one node of the record tree. The zero Value is Absent.
type Value struct {
	kind Kind
	raw  any
}

// wrap classifies a decoded JSON value (or a plain Go value used when
// stamping metadata) into a Value.
func wrap(raw any) Value {
	switch raw.(type) {
	case nil:
		return Value{kind: Null}
	case bool:
		return Value{kind: Bool, raw: raw}
	case string:
		return Value{kind: String, raw: raw}
	case json.Number, float64, float32, int, int32, int64:
		return Value{kind: Number, raw: raw}
	case map[string]any:
		return Value{kind: Object, raw: raw}
	case []any:
		return Value{kind: Array, raw: raw}
	default:
		return Value{}
	}
}

// Decode parses data into a Value. Numbers are kept as json.Number so
// integers stay distinguishable from floats and re-encoding is byte-stable.
// Trailing content after the first value is a syntax error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, newSyntaxError(data, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		line, col := locate(data, dec.InputOffset())
		return Value{}, &SyntaxError{
			Line:   line,
			Column: col,
			Msg:    "trailing content after JSON value",
		}
	}
	return wrap(raw), nil
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Exists reports whether the value is present (possibly null).
func (v Value) Exists() bool { return v.kind != Absent }

// IsNull reports whether the value is an explicit JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// Get returns the named member of an object, or an Absent value.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	raw, ok := v.raw.(map[string]any)[key]
	if !ok {
		return Value{}
	}
	return wrap(raw)
}

// At walks a chain of object members, returning Absent as soon as any
// segment is missing or not an object.
func (v Value) At(path ...string) Value {
	cur := v
	for _, key := range path {
		cur = cur.Get(key)
	}
	return cur
}

// Index returns the i-th element of an array, or an Absent value.
func (v Value) Index(i int) Value {
	if v.kind != Array {
		return Value{}
	}
	arr := v.raw.([]any)
	if i < 0 || i >= len(arr) {
		return Value{}
	}
	return wrap(arr[i])
}

// Len returns the element count of an array or member count of an object.
func (v Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.raw.(map[string]any))
	case Array:
		return len(v.raw.([]any))
	default:
		return 0
	}
}

// Keys returns an object's member names, sorted for deterministic walks.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	m := v.raw.(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.kind == String
}

// Float returns the numeric payload as float64.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	switch n := v.raw.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Int returns the numeric payload as int64 when it is a whole number.
func (v Value) Int() (int64, bool) {
	if v.kind != Number {
		return 0, false
	}
	switch n := v.raw.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// BoolVal returns the boolean payload.
func (v Value) BoolVal() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.kind == Bool
}

// IsInteger reports whether the value is a number with no fractional part.
func (v Value) IsInteger() bool {
	_, ok := v.Int()
	return ok
}

// Is reports whether the value satisfies the named type: one of string,
// integer, number, boolean, array, object. Integers satisfy number.
func (v Value) Is(typeName string) bool {
	switch typeName {
	case "string":
		return v.kind == String
	case "integer":
		return v.IsInteger()
	case "number":
		return v.kind == Number
	case "boolean":
		return v.kind == Bool
	case "array":
		return v.kind == Array
	case "object":
		return v.kind == Object
	}
	return false
}

// TypeName names the value's concrete type the way defect messages expect.
func (v Value) TypeName() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case String:
		return "string"
	case Number:
		if v.IsInteger() {
			return "integer"
		}
		return "number"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "absent"
	}
}

// Interface exposes the underlying decoded value for re-encoding or for
// handing to an external schema validator.
func (v Value) Interface() any { return v.raw }

// Display renders a scalar for defect messages.
func (v Value) Display() string {
	switch v.kind {
	case Null:
		return "null"
	case String:
		return v.raw.(string)
	default:
		return fmt.Sprintf("%v", v.raw)
	}
}
