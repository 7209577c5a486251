package stencil

// registerFlowFilters wires the Flow and Composition filter groups:
// forEach and partial. Both recurse back into the composer with a scope
// frame that is a child of the *caller's* current frame, not of the
// Context or the PageResult args frame directly — load-bearing for
// partial-argument scoping.
func registerFlowFilters(r *FilterRegistry) {
	r.Register("forEach", 2, false, func(e *evalState, args []Value) (Value, error) {
		return runForEach(e, argString(args[0]), args[1], "it")
	})
	r.Register("forEach", 3, false, func(e *evalState, args []Value) (Value, error) {
		return runForEach(e, argString(args[0]), args[1], argString(args[2]))
	})

	r.Register("partial", 1, false, func(e *evalState, args []Value) (Value, error) {
		return runPartial(e, argString(args[0]), nil)
	})
	r.Register("partial", 2, false, func(e *evalState, args []Value) (Value, error) {
		m, _ := args[1].AsMap()
		return runPartial(e, argString(args[0]), m)
	})
}

func runForEach(e *evalState, fragment string, list Value, varName string) (Value, error) {
	elems, ok := list.AsList()
	if !ok {
		return Unresolved, nil
	}
	out := make([]byte, 0, 64*len(elems))
	for _, el := range elems {
		child := e.scope.Child()
		child.Set(varName, el)
		childState := &evalState{ctx: e.ctx, result: e.result, scope: child}
		rendered, err := renderFragment(childState, fragment)
		if err != nil {
			return Value{}, err
		}
		out = append(out, rendered...)
	}
	return Raw(string(out)), nil
}

func runPartial(e *evalState, name string, vars map[string]Value) (Value, error) {
	page, err := e.ctx.GetPage(name)
	if err != nil {
		return Value{}, err
	}
	child := e.scope.Child()
	child.SetAll(vars)
	rendered, err := renderPage(e.ctx, e.result, page, child)
	if err != nil {
		return Value{}, err
	}
	return Raw(rendered), nil
}
