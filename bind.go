package stencil

import (
	"reflect"
	"strconv"
	"sync"
	"time"
)

// evalState carries everything an expression tree needs while it is being
// evaluated: the current scope chain, the owning Context (for filters,
// settings, culture) and the current PageResult (for Model / partial
// rendering). It is created fresh per placeholder evaluation and is not
// shared across renders.
type evalState struct {
	ctx    *Context
	result *PageResult
	scope  *Scope
}

// resolveBinding resolves a dotted path against scope, returning Unresolved
// if the root name isn't bound anywhere in the chain (and isn't one of the
// built-in "now"/"utcNow" timestamps), and the empty string as soon as a
// path step hits a null or Unresolved intermediate value.
func (e *evalState) resolveBinding(n *Node) (Value, error) {
	cur, found := e.scope.Lookup(n.Head)
	if !found {
		switch n.Head {
		case "now":
			cur, found = Time(time.Now()), true
		case "utcNow":
			cur, found = Time(time.Now().UTC()), true
		}
	}
	if !found {
		return Unresolved, nil
	}
	for _, step := range n.Path {
		if cur.IsNull() || cur.IsUnresolved() {
			return String(""), nil
		}
		var err error
		cur, err = e.applyStep(cur, step)
		if err != nil {
			return Value{}, err
		}
	}
	return cur, nil
}

func (e *evalState) applyStep(cur Value, step PathStep) (Value, error) {
	if step.Call {
		return Value{}, &BindingExpressionError{Expression: step.Field}
	}
	if step.Field != "" {
		return e.fieldAccess(cur, step.Field)
	}
	key, err := e.Eval(step.Index)
	if err != nil {
		return Value{}, err
	}
	return e.indexAccess(cur, key)
}

func (e *evalState) fieldAccess(cur Value, name string) (Value, error) {
	switch cur.Kind() {
	case KindMap:
		m, _ := cur.AsMap()
		if v, ok := m[name]; ok {
			return v, nil
		}
		return String(""), nil
	case KindObject:
		return reflectFieldAccess(cur.Raw(), name)
	default:
		return String(""), nil
	}
}

func (e *evalState) indexAccess(cur Value, key Value) (Value, error) {
	switch cur.Kind() {
	case KindMap:
		m, _ := cur.AsMap()
		if v, ok := m[key.AsString()]; ok {
			return v, nil
		}
		return String(""), nil
	case KindList:
		list, _ := cur.AsList()
		idx, ok := asIndex(key)
		if !ok || idx < 0 || idx >= len(list) {
			return String(""), nil
		}
		return list[idx], nil
	default:
		return String(""), nil
	}
}

func asIndex(v Value) (int, bool) {
	switch v.Kind() {
	case KindInt:
		return int(v.raw.(int64)), true
	case KindFloat:
		return int(v.raw.(float64)), true
	case KindString:
		i, err := strconv.Atoi(v.raw.(string))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// fieldCache amortizes reflective field lookup per (type, name), guarded
// by its own lock since it is written lazily from many goroutines
// rendering concurrently.
var fieldCache = newTypeFieldCache()

// reflectFieldAccess implements the one dynamism boundary for opaque host
// objects: an exported struct field or map entry may be read, but a method
// may never be invoked. If name resolves to a method instead of a field,
// it raises BindingExpressionError rather than calling it.
func reflectFieldAccess(obj interface{}, name string) (Value, error) {
	if obj == nil {
		return String(""), nil
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return String(""), nil
		}
		rv = rv.Elem()
	}
	if meth := reflect.ValueOf(obj).MethodByName(name); meth.IsValid() {
		return Value{}, &BindingExpressionError{Expression: name}
	}
	switch rv.Kind() {
	case reflect.Struct:
		f := fieldCache.fieldByName(rv.Type(), name)
		if f == nil {
			return String(""), nil
		}
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanInterface() {
			return String(""), nil
		}
		return FromNative(fv.Interface()), nil
	case reflect.Map:
		mv := rv.MapIndex(reflect.ValueOf(name))
		if !mv.IsValid() {
			return String(""), nil
		}
		return FromNative(mv.Interface()), nil
	default:
		return String(""), nil
	}
}

// explodeObjectFields returns every exported top-level field/entry of a
// host object as Values, backing the Model-explosion rule: a struct
// Model's fields (or a map Model's keys) become reachable as bare names
// in the PageResult args frame alongside "model.Field".
func explodeObjectFields(obj interface{}) map[string]Value {
	out := make(map[string]Value)
	if obj == nil {
		return out
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return out
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				continue
			}
			fv := rv.Field(i)
			if fv.CanInterface() {
				out[f.Name] = FromNative(fv.Interface())
			}
		}
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if key.Kind() != reflect.String {
				continue
			}
			out[key.String()] = FromNative(rv.MapIndex(key).Interface())
		}
	}
	return out
}

type typeFieldCache struct {
	mu    sync.Mutex
	cache map[reflect.Type]map[string]*reflect.StructField
}

func newTypeFieldCache() *typeFieldCache {
	return &typeFieldCache{cache: make(map[reflect.Type]map[string]*reflect.StructField)}
}

func (c *typeFieldCache) fieldByName(t reflect.Type, name string) *reflect.StructField {
	c.mu.Lock()
	defer c.mu.Unlock()
	fields, ok := c.cache[t]
	if !ok {
		fields = make(map[string]*reflect.StructField)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" { // unexported
				continue
			}
			ff := f
			fields[f.Name] = &ff
		}
		c.cache[t] = fields
	}
	return fields[name]
}
