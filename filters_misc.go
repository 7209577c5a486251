package stencil

import "encoding/json"

// registerMiscFilters wires the Output, Serialization, and Settings
// filter groups: raw, json, appSetting.
func registerMiscFilters(r *FilterRegistry) {
	r.Register("raw", 1, false, func(e *evalState, args []Value) (Value, error) {
		return Raw(args[0].AsString()), nil
	})

	r.Register("json", 1, false, func(e *evalState, args []Value) (Value, error) {
		bs, err := json.Marshal(toNative(args[0]))
		if err != nil {
			return Value{}, &FilterError{Filter: "json", Cause: err}
		}
		return Raw(string(bs)), nil
	})

	r.Register("appSetting", 1, false, func(e *evalState, args []Value) (Value, error) {
		if e.ctx.settings == nil {
			return Unresolved, nil
		}
		v, ok := e.ctx.settings.Get(args[0].AsString())
		if !ok {
			return Unresolved, nil
		}
		return String(v), nil
	})
}

// toNative converts a Value tree back into plain Go values suitable for
// json.Marshal: null becomes the literal JSON null, maps and lists are
// converted element-wise.
func toNative(v Value) interface{} {
	switch v.Kind() {
	case KindNull, KindUnresolved:
		return nil
	case KindList:
		list, _ := v.AsList()
		out := make([]interface{}, len(list))
		for i, e := range list {
			out[i] = toNative(e)
		}
		return out
	case KindMap:
		m, _ := v.AsMap()
		out := make(map[string]interface{}, len(m))
		for k, e := range m {
			out[k] = toNative(e)
		}
		return out
	default:
		return v.Raw()
	}
}
