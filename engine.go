package stencil

// Engine is a thin, host-facing convenience wrapper around a *Context,
// following a construct-configure-Init lifecycle: build it, register any
// additional filters or page formats, call Init, then parse and render
// templates against it.
type Engine struct {
	ctx *Context
}

// NewEngine constructs an Engine with the default filter library and
// bundled page formats already registered.
func NewEngine(opts ...Option) *Engine {
	return &Engine{ctx: NewContext(opts...)}
}

// RegisterFilter defines a filter under (name, arity), for use as
// `{{ value | myFilter(arg) }}` or `{{ myFilter(value, arg) }}`.
func (e *Engine) RegisterFilter(name string, arity int, handlesUnknown bool, fn FilterFunc) *Engine {
	e.ctx.RegisterFilter(name, arity, handlesUnknown, fn)
	return e
}

// RegisterPageFormat defines a page format by file extension.
func (e *Engine) RegisterPageFormat(f PageFormat) *Engine {
	e.ctx.RegisterPageFormat(f)
	return e
}

// Init freezes the engine's filter registry. Must be called once, after
// all RegisterFilter/RegisterPageFormat calls and before the first render.
func (e *Engine) Init() *Engine {
	e.ctx.Init()
	return e
}

// Context returns the underlying Context, for callers that need direct
// access to GetPage, NewPageResult, or other Context-level operations.
func (e *Engine) Context() *Context { return e.ctx }

// ParseTemplate creates a new Template from literal source using the
// engine's configuration.
func (e *Engine) ParseTemplate(source []byte) (*Template, SourceError) {
	return newTemplate(e.ctx, source, "", 0)
}

// ParseString is ParseTemplate for a string source.
func (e *Engine) ParseString(source string) (*Template, SourceError) {
	return e.ParseTemplate([]byte(source))
}

// ParseAndRender parses and then renders source against b.
func (e *Engine) ParseAndRender(source []byte, b Bindings) ([]byte, SourceError) {
	tpl, err := e.ParseTemplate(source)
	if err != nil {
		return nil, err
	}
	return tpl.Render(b)
}

// ParseAndRenderString is ParseAndRender for string source and output.
func (e *Engine) ParseAndRenderString(source string, b Bindings) (string, SourceError) {
	bs, err := e.ParseAndRender([]byte(source), b)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
