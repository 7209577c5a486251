package stencil

import (
	"net/url"
	"sort"
	"strings"
)

// registerURLFilters wires the URL filter group: addQueryString and
// addHashParams.
func registerURLFilters(r *FilterRegistry) {
	r.Register("addQueryString", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(addParams(argString(args[0]), args[1], '?', "&")), nil
	})
	r.Register("addHashParams", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(addParams(argString(args[0]), args[1], '#', "&")), nil
	})
}

// addParams appends URL-encoded k=v pairs from obj after sep (? or #),
// preserving an existing separator of the same kind if one is already
// present in base.
func addParams(base string, obj Value, sep byte, join string) string {
	m, _ := obj.AsMap()
	if len(m) == 0 {
		return base
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(m[k].AsString()))
	}
	encoded := strings.Join(pairs, join)

	if strings.IndexByte(base, sep) >= 0 {
		return base + join + encoded
	}
	return base + string(sep) + encoded
}
