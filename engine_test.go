package stencil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineParseAndRenderString(t *testing.T) {
	e := NewEngine().Init()
	out, err := e.ParseAndRenderString("Hi {{ name | upper }}", Bindings{"name": "ada"})
	require.NoError(t, err)
	require.Equal(t, "Hi ADA", out)
}

func TestEngineParseStringThenRenderTwice(t *testing.T) {
	e := NewEngine().Init()
	tpl, err := e.ParseString("{{ n | add(1) }}")
	require.NoError(t, err)

	out, rerr := tpl.Render(Bindings{"n": 1})
	require.NoError(t, rerr)
	require.Equal(t, "2", string(out))

	// A Template can be rendered repeatedly; each call is a fresh PageResult.
	out2, rerr := tpl.Render(Bindings{"n": 5})
	require.NoError(t, rerr)
	require.Equal(t, "6", string(out2))
}

func TestEngineRegisterFilterBeforeInit(t *testing.T) {
	e := NewEngine()
	e.RegisterFilter("shout", 1, false, func(ev *evalState, args []Value) (Value, error) {
		return String(args[0].AsString() + "!!!"), nil
	})
	e.Init()

	out, err := e.ParseAndRenderString("{{ word | shout }}", Bindings{"word": "hi"})
	require.NoError(t, err)
	require.Equal(t, "hi!!!", out)
}

func TestEngineRegisterPageFormat(t *testing.T) {
	e := NewEngine()
	e.RegisterPageFormat(PageFormat{
		Extension: ".txt",
		TransformBody: func(body string) (string, error) {
			return body + " (txt)", nil
		},
	})
	e.Init()
	require.NotNil(t, e.Context())
}

func TestEngineParseTemplateSyntaxError(t *testing.T) {
	e := NewEngine().Init()
	_, err := e.ParseTemplate([]byte("prefix {{ unterminated"))
	require.Error(t, err)
	require.NotZero(t, err.SourceOffset())
}
