package stencil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeLookupWalksParentChain(t *testing.T) {
	root := NewScope()
	root.Set("a", String("root-a"))
	root.Set("b", String("root-b"))

	child := root.Child()
	child.Set("b", String("child-b"))

	v, ok := child.Lookup("a")
	require.True(t, ok)
	require.Equal(t, String("root-a"), v)

	v, ok = child.Lookup("b")
	require.True(t, ok)
	require.Equal(t, String("child-b"), v, "child frame shadows parent")

	v, ok = child.Lookup("missing")
	require.False(t, ok)
	require.True(t, v.IsUnresolved())
}

func TestScopeSetOnlyAffectsLocalFrame(t *testing.T) {
	root := NewScope()
	child := root.Child()
	child.Set("only-child", Int(1))

	_, ok := root.Lookup("only-child")
	require.False(t, ok, "writes to a child frame must not leak to the parent")
}

func TestScopeSetAll(t *testing.T) {
	s := NewScope()
	s.SetAll(map[string]Value{"x": Int(1), "y": Int(2)})
	v, ok := s.Lookup("x")
	require.True(t, ok)
	require.Equal(t, Int(1), v)
	v, ok = s.Lookup("y")
	require.True(t, ok)
	require.Equal(t, Int(2), v)
}
