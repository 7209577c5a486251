package stencil

import (
	"strings"
	"time"

	"github.com/ortto/stencil/culture"
)

// registerDateFilters wires dateFormat, dateTimeFormat (plus its
// supplemented timezone overload), and dateStrftime.
func registerDateFilters(r *FilterRegistry) {
	r.Register("dateFormat", 1, false, func(e *evalState, args []Value) (Value, error) {
		t, ok := args[0].AsTime()
		if !ok {
			return Unresolved, nil
		}
		return String(t.Format(netLayout(e.ctx.defaultDateFormat()))), nil
	})
	r.Register("dateFormat", 2, false, func(e *evalState, args []Value) (Value, error) {
		t, ok := args[0].AsTime()
		if !ok {
			return Unresolved, nil
		}
		return String(t.Format(netLayout(argString(args[1])))), nil
	})

	r.Register("dateTimeFormat", 1, false, func(e *evalState, args []Value) (Value, error) {
		t, ok := args[0].AsTime()
		if !ok {
			return Unresolved, nil
		}
		return String(t.Format(netLayout(e.ctx.defaultDateTimeFormat()))), nil
	})
	r.Register("dateTimeFormat", 2, false, func(e *evalState, args []Value) (Value, error) {
		t, ok := args[0].AsTime()
		if !ok {
			return Unresolved, nil
		}
		return String(t.Format(netLayout(argString(args[1])))), nil
	})
	r.Register("dateTimeFormat", 3, false, func(e *evalState, args []Value) (Value, error) {
		t, ok := args[0].AsTime()
		if !ok {
			return Unresolved, nil
		}
		loc, err := time.LoadLocation(argString(args[2]))
		if err != nil {
			return Unresolved, nil
		}
		return String(t.In(loc).Format(netLayout(argString(args[1])))), nil
	})

	r.Register("dateStrftime", 2, false, func(e *evalState, args []Value) (Value, error) {
		t, ok := args[0].AsTime()
		if !ok {
			return Unresolved, nil
		}
		out, err := culture.Strftime(argString(args[1]), t)
		if err != nil {
			return Value{}, &FilterError{Filter: "dateStrftime", Cause: err}
		}
		return String(out), nil
	})
}

// netLayout translates a .NET-style date/time token string (yyyy, MM, dd,
// HH, mm, ss) into Go's reference-time layout. No available library
// speaks this token dialect, so it is the one deliberately stdlib-only
// piece of the date formatting group.
func netLayout(tokens string) string {
	replacer := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"MM", "01",
		"dd", "02",
		"HH", "15",
		"hh", "03",
		"mm", "04",
		"ss", "05",
		"tt", "PM",
		"Z", "Z07:00",
	)
	return replacer.Replace(tokens)
}
