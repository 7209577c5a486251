package stencil

import (
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ortto/stencil/internal/frontmatter"
)

type pageFlavor int

const (
	pageFlavorFile pageFlavor = iota
	pageFlavorOneTime
)

// parsedToken is one lexed+parsed unit of a page's token stream: either
// literal text, or a parsed Placeholder.
type parsedToken struct {
	literal     string
	placeholder *Placeholder
}

// Page is a named template source paired with its parsed token stream.
// FilePages are named, keyed by path, and cache-eligible;
// OneTimePages are ephemeral and never indexed.
type Page struct {
	mu sync.RWMutex

	Name   string
	Ext    string
	flavor pageFlavor

	tokens      []parsedToken
	frontMatter map[string]Value
	modTime     time.Time

	ctx *Context
}

func newPage(ctx *Context, name, source string, flavor pageFlavor, modTime time.Time) (*Page, error) {
	front, body, err := frontmatter.Split(source)
	if err != nil {
		return nil, &TemplateParseError{Message: "invalid front matter: " + err.Error()}
	}
	segments, err := Lex(body)
	if err != nil {
		return nil, err
	}
	tokens := make([]parsedToken, 0, len(segments))
	offset := 0
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentLiteral:
			tokens = append(tokens, parsedToken{literal: seg.Text})
			offset += len(seg.Text)
		case SegmentPlaceholder:
			ph, perr := ParsePlaceholder(seg.Text, seg.Source, offset)
			if perr != nil {
				return nil, perr
			}
			tokens = append(tokens, parsedToken{placeholder: ph})
			offset += len(seg.Source)
		}
	}
	args := make(map[string]Value, len(front))
	for k, v := range front {
		args[k] = FromNative(v)
	}
	return &Page{
		Name:        name,
		Ext:         path.Ext(name),
		flavor:      flavor,
		tokens:      tokens,
		frontMatter: args,
		modTime:     modTime,
		ctx:         ctx,
	}, nil
}

func (p *Page) snapshot() ([]parsedToken, map[string]Value) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tokens, p.frontMatter
}

// layoutCandidatePaths returns the conventional "_layout.<ext>" search
// path from the page's directory upward to the VFS root (nearest
// _layout.<ext> in or above the page's directory wins).
func layoutCandidatePaths(pageName, ext string) []string {
	dir := path.Dir(pageName)
	var candidates []string
	for {
		candidates = append(candidates, path.Join(dir, "_layout"+ext))
		if dir == "." || dir == "/" {
			break
		}
		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return candidates
}

// Template is a parsed, renderable unit returned by Engine.ParseTemplate,
// It wraps a OneTimePage.
type Template struct {
	page *Page
}

func newTemplate(ctx *Context, source []byte, _ string, _ int) (*Template, SourceError) {
	page, err := ctx.OneTimePage(string(source), "")
	if err != nil {
		se, _ := err.(SourceError)
		if se == nil {
			se = &TemplateParseError{Message: err.Error()}
		}
		return nil, se
	}
	return &Template{page: page}, nil
}

// Bindings is the host-supplied top-level variable set for one render,
// passed to Template.Render.
type Bindings map[string]interface{}

// Render renders the Template against b using a fresh PageResult with no
// layout and no partial nesting.
func (t *Template) Render(b Bindings) ([]byte, SourceError) {
	result := t.page.ctx.NewPageResult(t.page)
	for k, v := range b {
		result.SetArg(k, FromNative(v))
	}
	out, err := result.Render()
	if err != nil {
		se, ok := err.(SourceError)
		if !ok {
			se = &TemplateParseError{Message: err.Error()}
		}
		return nil, se
	}
	return []byte(out), nil
}

// PageResult is one render invocation: single-use; its args frame is
// discarded after rendering.
type PageResult struct {
	ctx    *Context
	page   *Page
	layout *Page

	// RenderID correlates log lines and error reports with one render
	// invocation; it has no bearing on rendering semantics.
	RenderID string

	model Value

	args *Scope

	outputTransformers []func(string) (string, error)
	pageTransformers   []func(string) (string, error)
	perResultFilters   *FilterRegistry

	contentType string

	rendered bool
	mu       sync.Mutex
}

// NewPageResult creates a PageResult for page with no layout and a null
// Model; layout resolution happens at Render time per the convention
// rule unless SetLayout overrides it.
func (c *Context) NewPageResult(page *Page) *PageResult {
	return &PageResult{
		ctx:         c,
		page:        page,
		RenderID:    uuid.NewString(),
		model:       Null,
		args:        c.args.Child(),
		contentType: "text/html",
	}
}

// SetModel binds the "model" name for this render.
func (r *PageResult) SetModel(v Value) { r.model = v }

// SetArg writes into the PageResult-local args frame.
func (r *PageResult) SetArg(name string, v Value) { r.args.Set(name, v) }

// SetLayout overrides layout resolution with an explicit layout page.
func (r *PageResult) SetLayout(p *Page) { r.layout = p }

// SetContentType records a content-type hint on this PageResult. Output
// transformers receive only the composed body; the hint is not passed to
// them.
func (r *PageResult) SetContentType(ct string) { r.contentType = ct }

// AddOutputTransformer appends a transform applied to the final composed
// string.
func (r *PageResult) AddOutputTransformer(f func(string) (string, error)) {
	r.outputTransformers = append(r.outputTransformers, f)
}

// AddPageTransformer appends a transform applied to the page body before
// layout injection.
func (r *PageResult) AddPageTransformer(f func(string) (string, error)) {
	r.pageTransformers = append(r.pageTransformers, f)
}

// AddFilter registers a filter scoped to this single render, shadowing or
// extending the Context-wide registry. Evaluation consults it before
// falling back to the Context's FilterRegistry, so a host can bind a
// one-off filter (or override a built-in one) for this PageResult alone
// without touching shared Context state.
func (r *PageResult) AddFilter(name string, arity int, handlesUnknown bool, fn FilterFunc) {
	if r.perResultFilters == nil {
		r.perResultFilters = NewFilterRegistry()
	}
	r.perResultFilters.Register(name, arity, handlesUnknown, fn)
}

// Render composes and renders this PageResult exactly once (a layout
// may be rendered at most once per PageResult).
func (r *PageResult) Render() (string, error) {
	r.mu.Lock()
	if r.rendered {
		r.mu.Unlock()
		return "", &TemplateParseError{Message: "PageResult already rendered"}
	}
	r.rendered = true
	r.mu.Unlock()
	return compose(r)
}
