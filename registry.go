package stencil

import "fmt"

// FilterFunc is the core dispatch signature a registered filter runs
// under; RegisterFilter stores it as given, and each filter coerces its
// own arguments. args[0] is always the subject; args[1:] are the
// filter's extra parameters,
// regardless of whether the call used the piped (`x | f(a,b)`) or
// positional (`f(x,a,b)`) surface form — both are normalized to the same
// args slice before dispatch.
type FilterFunc func(e *evalState, args []Value) (Value, error)

// filterEntry is one (name, arity) registration.
type filterEntry struct {
	arity          int // total arg count including subject; -1 = variadic
	handlesUnknown bool
	fn             FilterFunc
}

// FilterRegistry maps filter name + arity to an implementation. It
// is frozen once Context.Init runs; registering afterward is a
// programming error.
type FilterRegistry struct {
	entries map[string][]filterEntry
	frozen  bool
}

// NewFilterRegistry returns an empty registry.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{entries: make(map[string][]filterEntry)}
}

// Register adds an implementation for (name, arity). arity is the total
// number of arguments the filter consumes including its subject; pass -1
// for a variadic filter that accepts any arity >= 1.
func (r *FilterRegistry) Register(name string, arity int, handlesUnknown bool, fn FilterFunc) {
	if r.frozen {
		panic(fmt.Sprintf("stencil: filter %q registered after Init", name))
	}
	r.entries[name] = append(r.entries[name], filterEntry{arity: arity, handlesUnknown: handlesUnknown, fn: fn})
}

// Alias registers name2 as sharing name's implementations (aliases are
// stored as duplicate entries).
func (r *FilterRegistry) Alias(name2, name string) {
	if r.frozen {
		panic(fmt.Sprintf("stencil: alias %q registered after Init", name2))
	}
	r.entries[name2] = append(r.entries[name2], r.entries[name]...)
}

func (r *FilterRegistry) freeze() { r.frozen = true }

// lookup finds the entry matching name and the given arg count, preferring
// an exact-arity match and falling back to a variadic registration.
func (r *FilterRegistry) lookup(name string, argc int) (filterEntry, bool) {
	candidates, ok := r.entries[name]
	if !ok {
		return filterEntry{}, false
	}
	var variadic *filterEntry
	for i := range candidates {
		c := candidates[i]
		if c.arity == argc {
			return c, true
		}
		if c.arity < 0 && argc >= 1 {
			variadic = &c
		}
	}
	if variadic != nil {
		return *variadic, true
	}
	return filterEntry{}, false
}

// Invoke dispatches name against args per the Unresolved-propagation
// rule: if any argument is Unresolved and the matched filter does not
// declare handles-unknown, the call yields Unresolved without running the
// filter body. An unregistered (name, arity) pair also yields Unresolved —
// "unknown filter" and "unknown variable" share one passthrough contract.
func (r *FilterRegistry) Invoke(e *evalState, name string, args []Value) (Value, error) {
	entry, ok := r.lookup(name, len(args))
	if !ok {
		return Unresolved, nil
	}
	if !entry.handlesUnknown {
		for _, a := range args {
			if a.IsUnresolved() {
				return Unresolved, nil
			}
		}
	}
	return entry.fn(e, args)
}
