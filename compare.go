package stencil

import (
	"reflect"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate tries each of the well-known layouts the comparison coercion
// rule accepts for a string-vs-timestamp comparison.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// valuesEqual implements the comparison filters' equality rule: numeric
// kinds compare arithmetically, timestamps compare chronologically, a
// string against a timestamp is parsed as a date first, otherwise both
// sides are stringified.
func valuesEqual(a, b Value) bool {
	if a.IsNull() || a.IsUnresolved() {
		return b.IsNull() || b.IsUnresolved()
	}
	if b.IsNull() || b.IsUnresolved() {
		return false
	}
	if t, ok := coerceTimes(a, b); ok {
		return t.a.Equal(t.b)
	}
	if isNumeric(a.Kind()) && isNumeric(b.Kind()) {
		return numericValue(a) == numericValue(b)
	}
	if a.Kind() == KindBool && b.Kind() == KindBool {
		return a.Truthy() == b.Truthy()
	}
	return a.AsString() == b.AsString()
}

// valuesLess implements the comparison filters' ordering rule, mirroring
// valuesEqual's coercion.
func valuesLess(a, b Value) bool {
	if t, ok := coerceTimes(a, b); ok {
		return t.a.Before(t.b)
	}
	if isNumeric(a.Kind()) && isNumeric(b.Kind()) {
		return numericValue(a) < numericValue(b)
	}
	return a.AsString() < b.AsString()
}

type timePair struct{ a, b time.Time }

// coerceTimes applies the "mixed string-vs-timestamp" rule: if either side
// is a KindTime, the other side is parsed as a date if it's a string.
func coerceTimes(a, b Value) (timePair, bool) {
	at, aIsTime := a.AsTime()
	bt, bIsTime := b.AsTime()
	if aIsTime && bIsTime {
		return timePair{at, bt}, true
	}
	if aIsTime && b.Kind() == KindString {
		if pt, ok := parseDate(b.AsString()); ok {
			return timePair{at, pt}, true
		}
	}
	if bIsTime && a.Kind() == KindString {
		if pt, ok := parseDate(a.AsString()); ok {
			return timePair{pt, bt}, true
		}
	}
	return timePair{}, false
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }

func numericValue(v Value) float64 {
	switch v.Kind() {
	case KindInt:
		return float64(v.raw.(int64))
	case KindFloat:
		return v.raw.(float64)
	default:
		return 0
	}
}

// deepEqual is used by the sequence filters (setContains/setContainsAll)
// for list-membership comparisons, falling back to reflect.DeepEqual for
// the opaque Object kind for its default case.
func deepEqual(a, b Value) bool {
	if a.Kind() == KindObject || b.Kind() == KindObject {
		return reflect.DeepEqual(a.Raw(), b.Raw())
	}
	return valuesEqual(a, b)
}
