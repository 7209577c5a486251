package stencil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValueTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null, false},
		{"unresolved", Unresolved, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero int", Int(0), false},
		{"nonzero int", Int(1), true},
		{"empty string", String(""), false},
		{"whitespace string", String(" "), true},
		{"zero float is truthy", Float(0), true},
		{"empty list is truthy", List(nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.Truthy())
		})
	}
}

func TestValueAsString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null, ""},
		{"unresolved", Unresolved, ""},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"float", Float(1.5), "1.5"},
		{"string", String("hi"), "hi"},
		{"raw", Raw("<b>hi</b>"), "<b>hi</b>"},
		{"list", List([]Value{String("a"), String("b")}), "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.AsString())
		})
	}
}

func TestValueKindDistinguishesUnresolvedFromNull(t *testing.T) {
	require.True(t, Unresolved.IsUnresolved())
	require.False(t, Unresolved.IsNull())
	require.True(t, Null.IsNull())
	require.False(t, Null.IsUnresolved())
	require.NotEqual(t, Null.Kind(), Unresolved.Kind())
}

func TestFromNative(t *testing.T) {
	require.Equal(t, KindNull, FromNative(nil).Kind())
	require.Equal(t, KindBool, FromNative(true).Kind())
	require.Equal(t, KindInt, FromNative(7).Kind())
	require.Equal(t, KindFloat, FromNative(7.5).Kind())
	require.Equal(t, KindString, FromNative("x").Kind())
	require.Equal(t, KindTime, FromNative(time.Now()).Kind())

	list := FromNative([]interface{}{1, "a"})
	require.Equal(t, KindList, list.Kind())
	elems, ok := list.AsList()
	require.True(t, ok)
	require.Len(t, elems, 2)
	require.Equal(t, KindInt, elems[0].Kind())
	require.Equal(t, KindString, elems[1].Kind())

	m := FromNative(map[string]interface{}{"k": 1})
	require.Equal(t, KindMap, m.Kind())
	entries, ok := m.AsMap()
	require.True(t, ok)
	require.Equal(t, Int(1), entries["k"])

	type host struct{ Name string }
	obj := FromNative(host{Name: "h"})
	require.Equal(t, KindObject, obj.Kind())
}

func TestValueRawHidesUnresolvedAndNull(t *testing.T) {
	require.Nil(t, Unresolved.Raw())
	require.Nil(t, Null.Raw())
	require.Equal(t, int64(3), Int(3).Raw())
}
