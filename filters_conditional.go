package stencil

// registerConditionalFilters wires the Conditional, Alternative, and
// Truthy/Falsy filter groups.
func registerConditionalFilters(r *FilterRegistry) {
	passIf := func(name string, want bool) {
		r.Register(name, 2, false, func(e *evalState, args []Value) (Value, error) {
			if args[1].Truthy() == want {
				return args[0], nil
			}
			return Unresolved, nil
		})
		// the 1-arg form tests the subject's own truthiness rather than a
		// separate condition argument.
		r.Register(name, 1, false, func(e *evalState, args []Value) (Value, error) {
			if args[0].Truthy() == want {
				return args[0], nil
			}
			return Unresolved, nil
		})
	}
	passIf("if", true)
	r.Alias("when", "if")
	passIf("ifNot", false)
	r.Alias("unless", "ifNot")

	r.Register("otherwise", 2, true, func(e *evalState, args []Value) (Value, error) {
		if args[0].IsUnresolved() || args[0].IsNull() {
			return args[1], nil
		}
		return args[0], nil
	})
	r.Alias("else", "otherwise")

	r.Register("truthy", 2, false, func(e *evalState, args []Value) (Value, error) {
		if args[1].Truthy() {
			return args[0], nil
		}
		return Unresolved, nil
	})
	r.Register("falsy", 2, false, func(e *evalState, args []Value) (Value, error) {
		if !args[1].Truthy() {
			return args[0], nil
		}
		return Unresolved, nil
	})
	r.Register("ifTruthy", 2, true, func(e *evalState, args []Value) (Value, error) {
		if args[1].Truthy() {
			return args[0], nil
		}
		return Unresolved, nil
	})
	r.Register("ifFalsey", 2, true, func(e *evalState, args []Value) (Value, error) {
		if !args[1].Truthy() {
			return args[0], nil
		}
		return Unresolved, nil
	})
}
