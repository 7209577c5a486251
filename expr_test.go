package stencil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parsePlaceholder(t *testing.T, src string) *Placeholder {
	t.Helper()
	p, err := ParsePlaceholder(src, "{{ "+src+" }}", 0)
	require.NoError(t, err)
	return p
}

func TestParsePlaceholderBindingPath(t *testing.T) {
	p := parsePlaceholder(t, "user.address.city")
	require.Equal(t, NodeBinding, p.Head.Kind)
	require.Equal(t, "user", p.Head.Head)
	require.Len(t, p.Head.Path, 2)
	require.Equal(t, "address", p.Head.Path[0].Field)
	require.Equal(t, "city", p.Head.Path[1].Field)
}

func TestParsePlaceholderIndexStep(t *testing.T) {
	p := parsePlaceholder(t, `items[0]`)
	require.Len(t, p.Head.Path, 1)
	require.NotNil(t, p.Head.Path[0].Index)
	require.Equal(t, NodeLiteral, p.Head.Path[0].Index.Kind)
	require.Equal(t, Int(0), p.Head.Path[0].Index.Literal)
}

func TestParsePlaceholderPipedFilterChain(t *testing.T) {
	p := parsePlaceholder(t, `name | upper | truncate(5)`)
	require.Len(t, p.Chain, 2)
	require.Equal(t, "upper", p.Chain[0].Name)
	require.Empty(t, p.Chain[0].Args)
	require.Equal(t, "truncate", p.Chain[1].Name)
	require.Len(t, p.Chain[1].Args, 1)
}

func TestParsePlaceholderPositionalFilterCall(t *testing.T) {
	p := parsePlaceholder(t, `add(price, 1)`)
	require.Equal(t, NodeCall, p.Head.Kind)
	require.Equal(t, "add", p.Head.CallName)
	require.Len(t, p.Head.CallArgs, 2)
}

func TestParsePlaceholderLiterals(t *testing.T) {
	p := parsePlaceholder(t, `true`)
	require.Equal(t, Bool(true), p.Head.Literal)

	p = parsePlaceholder(t, `null`)
	require.Equal(t, Null, p.Head.Literal)

	p = parsePlaceholder(t, `3.5`)
	require.Equal(t, Float(3.5), p.Head.Literal)

	p = parsePlaceholder(t, `3`)
	require.Equal(t, Int(3), p.Head.Literal)

	p = parsePlaceholder(t, `"hi"`)
	require.Equal(t, String("hi"), p.Head.Literal)
}

func TestParsePlaceholderObjectAndArrayLiterals(t *testing.T) {
	p := parsePlaceholder(t, `{a: 1, b: "x"} | json`)
	require.Equal(t, NodeObject, p.Head.Kind)
	require.Len(t, p.Head.Entries, 2)

	p = parsePlaceholder(t, `[1, 2, 3] | join(",")`)
	require.Equal(t, NodeArray, p.Head.Kind)
	require.Len(t, p.Head.Elements, 3)
}

func TestParsePlaceholderUnmatchedParenIsFatal(t *testing.T) {
	_, err := ParsePlaceholder(`upper(name`, "{{ upper(name }}", 0)
	require.Error(t, err)
}

func TestParsePlaceholderTrailingInputIsFatal(t *testing.T) {
	_, err := ParsePlaceholder(`name extra`, "{{ name extra }}", 0)
	require.Error(t, err)
}
