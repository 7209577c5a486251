package stencil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValuesEqualNumericCoercion(t *testing.T) {
	require.True(t, valuesEqual(Int(2), Float(2.0)))
	require.False(t, valuesEqual(Int(2), Float(2.5)))
}

func TestValuesEqualNullAndUnresolved(t *testing.T) {
	require.True(t, valuesEqual(Null, Unresolved))
	require.True(t, valuesEqual(Unresolved, Null))
	require.False(t, valuesEqual(Null, Int(0)))
}

func TestValuesEqualStringVsTimestamp(t *testing.T) {
	ts := Time(time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC))
	require.True(t, valuesEqual(ts, String("2020-01-02")))
	require.False(t, valuesEqual(ts, String("2020-01-03")))
}

func TestValuesEqualFallsBackToLexicographic(t *testing.T) {
	require.True(t, valuesEqual(String("abc"), String("abc")))
	require.False(t, valuesEqual(String("abc"), String("abd")))
}

func TestValuesLessNumeric(t *testing.T) {
	require.True(t, valuesLess(Int(1), Int(2)))
	require.False(t, valuesLess(Int(2), Int(1)))
}

func TestValuesLessChronological(t *testing.T) {
	early := Time(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	late := Time(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, valuesLess(early, late))
	require.False(t, valuesLess(late, early))
}

func TestValuesLessLexicographic(t *testing.T) {
	require.True(t, valuesLess(String("a"), String("b")))
}

func TestDeepEqualFallsBackToReflectForObjects(t *testing.T) {
	type host struct{ Name string }
	a := Object(host{Name: "x"})
	b := Object(host{Name: "x"})
	c := Object(host{Name: "y"})
	require.True(t, deepEqual(a, b))
	require.False(t, deepEqual(a, c))
}

func TestDeepEqualListElements(t *testing.T) {
	require.True(t, deepEqual(Int(1), Int(1)))
	require.False(t, deepEqual(Int(1), Int(2)))
}
