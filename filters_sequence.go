package stencil

import (
	"sort"
	"strings"
)

// registerSequenceFilters wires the Sequence group (array/list
// operations, setContains/setContainsAll membership tests, startsWith/
// endsWith, booleanFormat, and at_least/at_most clamps) alongside
// forEach, which lives in filters_flow.go.
func registerSequenceFilters(r *FilterRegistry) {
	r.Register("setContains", -1, false, func(e *evalState, args []Value) (Value, error) {
		return Bool(setContainsAny(args[0], args[1:])), nil
	})
	r.Register("setContainsAll", -1, false, func(e *evalState, args []Value) (Value, error) {
		return Bool(setContainsAll(args[0], args[1:])), nil
	})

	r.Register("startsWith", 2, false, func(e *evalState, args []Value) (Value, error) {
		return Bool(strings.HasPrefix(argString(args[0]), argString(args[1]))), nil
	})
	r.Register("endsWith", 2, false, func(e *evalState, args []Value) (Value, error) {
		return Bool(strings.HasSuffix(argString(args[0]), argString(args[1]))), nil
	})

	r.Register("booleanFormat", 2, false, func(e *evalState, args []Value) (Value, error) {
		b := args[0].Truthy()
		switch argString(args[1]) {
		case "yesNo":
			if b {
				return String("Yes"), nil
			}
			return String("No"), nil
		case "onOff":
			if b {
				return String("On"), nil
			}
			return String("Off"), nil
		default:
			if b {
				return String("True"), nil
			}
			return String("False"), nil
		}
	})

	r.Register("at_least", 2, false, func(e *evalState, args []Value) (Value, error) {
		min := argFloat(args[1])
		if argFloat(args[0]) < min {
			return clampResult(args[0], min), nil
		}
		return args[0], nil
	})
	r.Register("at_most", 2, false, func(e *evalState, args []Value) (Value, error) {
		max := argFloat(args[1])
		if argFloat(args[0]) > max {
			return clampResult(args[0], max), nil
		}
		return args[0], nil
	})

	r.Register("size", 1, false, func(e *evalState, args []Value) (Value, error) {
		switch args[0].Kind() {
		case KindList:
			l, _ := args[0].AsList()
			return Int(int64(len(l))), nil
		case KindString:
			return Int(int64(len([]rune(argString(args[0]))))), nil
		default:
			return Int(0), nil
		}
	})
	r.Register("first", 1, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok || len(l) == 0 {
			return Unresolved, nil
		}
		return l[0], nil
	})
	r.Register("last", 1, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok || len(l) == 0 {
			return Unresolved, nil
		}
		return l[len(l)-1], nil
	})
	r.Register("reverse", 1, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok {
			return Unresolved, nil
		}
		out := make([]Value, len(l))
		for i, v := range l {
			out[len(l)-1-i] = v
		}
		return List(out), nil
	})
	r.Register("uniq", 1, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok {
			return Unresolved, nil
		}
		var out []Value
		for _, v := range l {
			dup := false
			for _, seen := range out {
				if deepEqual(seen, v) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
		return List(out), nil
	})
	r.Register("compact", 1, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok {
			return Unresolved, nil
		}
		var out []Value
		for _, v := range l {
			if !v.IsNull() && !v.IsUnresolved() {
				out = append(out, v)
			}
		}
		return List(out), nil
	})
	r.Register("sort", 1, false, func(e *evalState, args []Value) (Value, error) {
		return sortList(args[0], false)
	})
	r.Register("sort_natural", 1, false, func(e *evalState, args []Value) (Value, error) {
		return sortList(args[0], true)
	})
	r.Register("map", 2, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok {
			return Unresolved, nil
		}
		field := argString(args[1])
		out := make([]Value, len(l))
		for i, v := range l {
			mapped, err := e.fieldAccess(v, field)
			if err != nil {
				return Value{}, err
			}
			out[i] = mapped
		}
		return List(out), nil
	})
	r.Register("join", 2, false, func(e *evalState, args []Value) (Value, error) {
		l, ok := args[0].AsList()
		if !ok {
			return Unresolved, nil
		}
		sep := argString(args[1])
		parts := make([]string, len(l))
		for i, v := range l {
			parts[i] = v.AsString()
		}
		return String(strings.Join(parts, sep)), nil
	})
	r.Register("split", 2, false, func(e *evalState, args []Value) (Value, error) {
		parts := strings.Split(argString(args[0]), argString(args[1]))
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return List(out), nil
	})
}

func clampResult(original Value, f float64) Value {
	if original.Kind() == KindInt {
		return Int(int64(f))
	}
	return Float(f)
}

func setContainsAny(subject Value, matches []Value) bool {
	for _, candidate := range setMembers(subject) {
		for _, m := range matches {
			if deepEqual(candidate, m) {
				return true
			}
		}
	}
	return false
}

func setContainsAll(subject Value, matches []Value) bool {
	members := setMembers(subject)
	for _, m := range matches {
		found := false
		for _, candidate := range members {
			if deepEqual(candidate, m) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// setMembers normalizes a subject into the sequence setContains/
// setContainsAll test membership against: a list Value as-is, or a
// comma-separated string split into string members.
func setMembers(subject Value) []Value {
	if subject.Kind() == KindList {
		l, _ := subject.AsList()
		return l
	}
	if subject.Kind() == KindString {
		parts := strings.Split(subject.AsString(), ",")
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return out
	}
	return nil
}

func sortList(v Value, natural bool) (Value, error) {
	l, ok := v.AsList()
	if !ok {
		return Unresolved, nil
	}
	out := make([]Value, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		if natural {
			return strings.ToLower(out[i].AsString()) < strings.ToLower(out[j].AsString())
		}
		return valuesLess(out[i], out[j])
	})
	return List(out), nil
}
