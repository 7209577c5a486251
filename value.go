package stencil

import (
	"fmt"
	"time"
)

// Kind identifies the concrete shape a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindList
	KindMap
	KindObject
	KindUnresolved
	KindRaw
)

// unresolvedMarker is the distinguished singleton for "no such binding /
// no such filter output". It is never equal to null: null is a legitimate
// rendered value (the empty string), Unresolved triggers passthrough of
// the original placeholder source unless a handles-unknown filter
// consumes it first.
type unresolvedMarker struct{}

// Unresolved is the sentinel Value returned by a lookup or filter
// invocation that could not produce a result.
var Unresolved = Value{kind: KindUnresolved, raw: unresolvedMarker{}}

// Null is the legitimate null Value; it renders as the empty string.
var Null = Value{kind: KindNull}

// Value is the universal runtime value threaded through bindings and
// filters. It is immutable: every operation that would "change" a Value
// returns a new one.
type Value struct {
	kind Kind
	raw  interface{}
}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, raw: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, raw: i} }

// Float wraps a floating-point number.
func Float(f float64) Value { return Value{kind: KindFloat, raw: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, raw: s} }

// Time wraps a timestamp.
func Time(t time.Time) Value { return Value{kind: KindTime, raw: t} }

// List wraps an ordered list of Values.
func List(vs []Value) Value { return Value{kind: KindList, raw: vs} }

// Map wraps a string-keyed mapping of Values.
func Map(m map[string]Value) Value { return Value{kind: KindMap, raw: m} }

// Object wraps an opaque host object, reachable only through reflective
// field/index access; method invocation on it is forbidden.
func Object(o interface{}) Value { return Value{kind: KindObject, raw: o} }

// Raw wraps a string that has already been escaped (or is intentionally
// markup) and must be injected into rendered output verbatim. The raw,
// json, forEach and partial filters and layout page injection produce
// this kind.
func Raw(s string) Value { return Value{kind: KindRaw, raw: s} }

// FromNative lifts a host-supplied Go value into the Value tagged union.
// Maps and slices are lifted element-wise; anything else not already
// recognized becomes an opaque Object.
func FromNative(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	case time.Time:
		return Time(t)
	case []Value:
		return List(t)
	case map[string]Value:
		return Map(t)
	case []interface{}:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = FromNative(e)
		}
		return List(out)
	case map[string]interface{}:
		out := make(map[string]Value, len(t))
		for k, e := range t {
			out[k] = FromNative(e)
		}
		return Map(out)
	default:
		return Object(v)
	}
}

// Kind reports the Value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsUnresolved reports whether v is the Unresolved marker.
func (v Value) IsUnresolved() bool { return v.kind == KindUnresolved }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Raw returns the underlying native Go value (nil, bool, int64, float64,
// string, time.Time, []Value, map[string]Value, or an opaque object).
func (v Value) Raw() interface{} {
	if v.kind == KindUnresolved || v.kind == KindNull {
		return nil
	}
	return v.raw
}

// Truthy implements the truthiness rule: null, Unresolved, false,
// integer 0, and the empty string are falsy; everything else (including
// whitespace-only strings) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull, KindUnresolved:
		return false
	case KindBool:
		return v.raw.(bool)
	case KindInt:
		return v.raw.(int64) != 0
	case KindString:
		return v.raw.(string) != ""
	default:
		return true
	}
}

// AsString renders v the way the composer does for template output,
// before HTML escaping: null is the empty string, Unresolved callers must
// special-case separately (passthrough of source text), numbers use their
// natural Go formatting, and lists/maps fall back to a readable form.
func (v Value) AsString() string {
	switch v.kind {
	case KindNull, KindUnresolved:
		return ""
	case KindBool:
		if v.raw.(bool) {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.raw.(int64))
	case KindFloat:
		return formatFloat(v.raw.(float64))
	case KindString, KindRaw:
		return v.raw.(string)
	case KindTime:
		return v.raw.(time.Time).Format(time.RFC3339)
	case KindList:
		list := v.raw.([]Value)
		parts := make([]string, len(list))
		for i, e := range list {
			parts[i] = e.AsString()
		}
		return joinStrings(parts, " ")
	case KindMap:
		return fmt.Sprintf("%v", v.raw)
	default:
		return fmt.Sprintf("%v", v.raw)
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func joinStrings(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// AsList returns the Value's elements if it is a KindList, else nil, ok=false.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.raw.([]Value), true
}

// AsMap returns the Value's entries if it is a KindMap, else nil, ok=false.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.raw.(map[string]Value), true
}

// AsTime returns the Value as a time.Time if it holds one.
func (v Value) AsTime() (time.Time, bool) {
	t, ok := v.raw.(time.Time)
	return t, ok && v.kind == KindTime
}
