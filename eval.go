package stencil

// Eval evaluates any expression-tree node to a Value. Arguments are
// evaluated depth-first, left to right (a fixed ordering guarantee).
func (e *evalState) Eval(n *Node) (Value, error) {
	switch n.Kind {
	case NodeLiteral:
		return n.Literal, nil
	case NodeBinding:
		return e.resolveBinding(n)
	case NodeObject:
		m := make(map[string]Value, len(n.Entries))
		for _, entry := range n.Entries {
			v, err := e.Eval(entry.Value)
			if err != nil {
				return Value{}, err
			}
			m[entry.Key] = v
		}
		return Map(m), nil
	case NodeArray:
		list := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.Eval(el)
			if err != nil {
				return Value{}, err
			}
			list[i] = v
		}
		return List(list), nil
	case NodeCall:
		args := make([]Value, len(n.CallArgs))
		for i, a := range n.CallArgs {
			v, err := e.Eval(a)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return e.invokeFilter(n.CallName, args)
	default:
		return Unresolved, nil
	}
}

// invokeFilter dispatches name against args, consulting the PageResult's
// per-result filter registry (PageResult.AddFilter) before the Context's
// shared FilterRegistry, so a render-scoped filter shadows a built-in of
// the same (name, arity).
func (e *evalState) invokeFilter(name string, args []Value) (Value, error) {
	if e.result != nil && e.result.perResultFilters != nil {
		if entry, ok := e.result.perResultFilters.lookup(name, len(args)); ok {
			if !entry.handlesUnknown {
				for _, a := range args {
					if a.IsUnresolved() {
						return Unresolved, nil
					}
				}
			}
			return entry.fn(e, args)
		}
	}
	return e.ctx.filters.Invoke(e, name, args)
}

// EvalPlaceholder evaluates a full placeholder: its head, then its filter
// chain left to right, each filter receiving the prior result as its
// subject (evaluation is left-associative).
func (e *evalState) EvalPlaceholder(p *Placeholder) (Value, error) {
	v, err := e.Eval(p.Head)
	if err != nil {
		return Value{}, err
	}
	for _, call := range p.Chain {
		args := make([]Value, 0, len(call.Args)+1)
		args = append(args, v)
		for _, a := range call.Args {
			av, err := e.Eval(a)
			if err != nil {
				return Value{}, err
			}
			args = append(args, av)
		}
		v, err = e.invokeFilter(call.Name, args)
		if err != nil {
			return Value{}, err
		}
	}
	return v, nil
}
