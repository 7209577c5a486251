package stencil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var filterTests = []struct {
	in       string
	bindings Bindings
	expected string
}{
	// arithmetic
	{in: "{{ 4 | add(2) }}", expected: "6"},
	{in: "{{ 4 | sub(2) }}", expected: "2"},
	{in: "{{ 3 | mul(2) }}", expected: "6"},
	{in: "{{ 20 | div(8) }}", expected: "2.5"},
	{in: "{{ 5 | incr }}", expected: "6"},
	{in: "{{ 5 | decr }}", expected: "4"},
	{in: "{{ 5 | incrBy(3) }}", expected: "8"},

	// comparison
	{in: "{{ 2 | lt(3) }}", expected: "true"},
	{in: "{{ 3 | gt(2) }}", expected: "true"},
	{in: "{{ 2 | eq(2) }}", expected: "true"},
	{in: "{{ 2 | not(3) }}", expected: "true"},

	// conditional
	{in: `{{ "yes" | if(flag) }}`, bindings: Bindings{"flag": true}, expected: "yes"},
	{in: `{{ fallback | otherwise("default") }}`, bindings: Bindings{"fallback": nil}, expected: "default"},

	// string
	{in: `{{ "HELLO" | lower }}`, expected: "hello"},
	{in: `{{ "hello" | upper }}`, expected: "HELLO"},
	{in: `{{ "hello_world" | humanize }}`, expected: "Hello World"},
	{in: `{{ "hello world" | pascalCase }}`, expected: "HelloWorld"},
	{in: `{{ "hello world" | camelCase }}`, expected: "helloWorld"},
	{in: `{{ "Template" | substring(0, 4) }}`, expected: "Temp"},
	{in: `{{ "7" | padLeft(3, "0") }}`, expected: "007"},
	{in: `{{ "ab" | repeating(3) }}`, expected: "ababab"},

	// sequence
	{in: `{{ items | size }}`, bindings: Bindings{"items": []interface{}{1, 2, 3}}, expected: "3"},
	{in: `{{ items | first }}`, bindings: Bindings{"items": []interface{}{"a", "b"}}, expected: "a"},
	{in: `{{ items | last }}`, bindings: Bindings{"items": []interface{}{"a", "b"}}, expected: "b"},
	{in: `{{ items | join(",") }}`, bindings: Bindings{"items": []interface{}{"a", "b", "c"}}, expected: "a,b,c"},
	{in: `{{ items | reverse | join(",") }}`, bindings: Bindings{"items": []interface{}{"a", "b", "c"}}, expected: "c,b,a"},
	{in: `{{ "a,b,a,c" | split(",") | uniq | join(",") }}`, expected: "a,b,c"},
	{in: `{{ items | setContains("b") }}`, bindings: Bindings{"items": []interface{}{"a", "b"}}, expected: "true"},
	{in: `{{ 1 | booleanFormat("yesNo") }}`, expected: "Yes"},

	// hash
	{in: `{{ "abc" | md5 }}`, expected: "900150983cd24fb0d6963f7d28e17f72"},
	{in: `{{ "abc" | sha1 }}`, expected: "a9993e364706816aba3e25717850c26c9cd0d89d"},

	// url
	{in: `{{ "/path" | addQueryString(params) }}`, bindings: Bindings{"params": map[string]interface{}{"a": "1"}}, expected: "/path?a=1"},

	// raw / json passthrough
	{in: `{{ "<b>x</b>" | raw }}`, expected: "<b>x</b>"},
	{in: `{{ name | json }}`, bindings: Bindings{"name": "hi"}, expected: `"hi"`},
}

func TestFilters(t *testing.T) {
	e := NewEngine().Init()

	for i, test := range filterTests {
		t.Run(fmt.Sprintf("%02d_%s", i+1, test.in), func(t *testing.T) {
			out, err := e.ParseAndRenderString(test.in, test.bindings)
			require.NoError(t, err, test.in)
			require.Equal(t, test.expected, out, test.in)
		})
	}
}

func TestFilterUnresolvedPassthrough(t *testing.T) {
	e := NewEngine().Init()
	out, err := e.ParseAndRenderString("{{ missing }}", nil)
	require.NoError(t, err)
	require.Equal(t, "{{ missing }}", out)
}

func TestFilterHTMLEscaping(t *testing.T) {
	e := NewEngine().Init()
	out, err := e.ParseAndRenderString("{{ body }}", Bindings{"body": "<script>"})
	require.NoError(t, err)
	require.Equal(t, "&lt;script&gt;", out)
}

func TestFilterDivideByZeroIsFatalByDefault(t *testing.T) {
	e := NewEngine().Init()
	_, err := e.ParseAndRenderString("{{ 4 | div(0) }}", nil)
	require.Error(t, err)
}

func TestFilterDivideByZeroWarnsWhenNotStrict(t *testing.T) {
	e := NewEngine(WithStrictFilterErrors(false)).Init()
	out, err := e.ParseAndRenderString("before {{ 4 | div(0) }} after", nil)
	require.NoError(t, err)
	require.Equal(t, "before  after", out)
}

func TestFilterCurrencyDerivesCodeFromCulture(t *testing.T) {
	eUS := NewEngine(WithDefaultArg("DefaultCulture", String("en-US"))).Init()
	outUS, err := eUS.ParseAndRenderString("{{ 19.99 | currency }}", nil)
	require.NoError(t, err)
	require.Contains(t, outUS, "19.99")
	require.Contains(t, outUS, "$")

	eFR := NewEngine(WithDefaultArg("DefaultCulture", String("fr-FR"))).Init()
	outFR, err := eFR.ParseAndRenderString("{{ 19.99 | currency }}", nil)
	require.NoError(t, err)
	require.Contains(t, outFR, "19,99")
	require.Contains(t, outFR, "€")
	require.NotContains(t, outFR, "$")
}

func TestFilterCurrencyExplicitCultureArgOverridesDefault(t *testing.T) {
	e := NewEngine().Init()
	out, err := e.ParseAndRenderString(`{{ 19.99 | currency("fr-FR") }}`, nil)
	require.NoError(t, err)
	require.Contains(t, out, "€")
	require.NotContains(t, out, "$")
}

func TestFilterForEach(t *testing.T) {
	e := NewEngine().Init()
	out, err := e.ParseAndRenderString(
		`{{ "[{{ it }}]" | forEach(items) }}`,
		Bindings{"items": []interface{}{"a", "b"}},
	)
	require.NoError(t, err)
	require.Equal(t, "[a][b]", out)
}
