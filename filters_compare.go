package stencil

// registerCompareFilters wires the Comparison filter group. Alias pairs
// share one implementation.
func registerCompareFilters(r *FilterRegistry) {
	register2 := func(name string, fn func(a, b Value) bool) {
		r.Register(name, 2, false, func(e *evalState, args []Value) (Value, error) {
			return Bool(fn(args[0], args[1])), nil
		})
	}

	register2("greaterThan", func(a, b Value) bool { return valuesLess(b, a) })
	r.Alias("gt", "greaterThan")

	register2("greaterThanEqual", func(a, b Value) bool { return !valuesLess(a, b) })
	r.Alias("gte", "greaterThanEqual")

	register2("lessThan", valuesLess)
	r.Alias("lt", "lessThan")

	register2("lessThanEqual", func(a, b Value) bool { return !valuesLess(b, a) })
	r.Alias("lte", "lessThanEqual")

	register2("equals", valuesEqual)
	r.Alias("eq", "equals")

	register2("notEquals", func(a, b Value) bool { return !valuesEqual(a, b) })
	r.Alias("not", "notEquals")

	r.Register("and", 2, false, func(e *evalState, args []Value) (Value, error) {
		return Bool(args[0].Truthy() && args[1].Truthy()), nil
	})
	r.Register("or", 2, false, func(e *evalState, args []Value) (Value, error) {
		return Bool(args[0].Truthy() || args[1].Truthy()), nil
	})
}
