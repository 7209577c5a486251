package stencil

import (
	"errors"
	"html"
)

// compose renders r's page, resolves and renders its layout if any, and
// runs the registered output transformers over the final string. It is
// the single entry point the rest of the package calls to turn a
// PageResult into bytes.
func compose(r *PageResult) (string, error) {
	ctx := r.ctx

	layout, err := resolveLayout(r)
	if err != nil {
		return "", err
	}
	if layout != nil && layout.Name == r.page.Name {
		return "", &TemplateParseError{Message: "page cannot be its own layout: " + r.page.Name}
	}

	explodeModel(r)

	var body string
	if layout == nil {
		pageScope := r.args.Child()
		body, err = renderPage(ctx, r, r.page, pageScope)
		if err != nil {
			return "", err
		}
	} else {
		layoutScope := r.args.Child()
		pageScope := layoutScope.Child()
		pageBody, err := renderPage(ctx, r, r.page, pageScope)
		if err != nil {
			return "", err
		}
		pageBody, err = transformPageBody(r, r.page, layout, pageBody)
		if err != nil {
			return "", err
		}
		layoutScope.Set("page", Raw(pageBody))
		body, err = renderPage(ctx, r, layout, layoutScope)
		if err != nil {
			return "", err
		}
	}

	for _, t := range r.outputTransformers {
		body, err = t(body)
		if err != nil {
			return "", err
		}
	}
	return body, nil
}

// resolveLayout implements the layout search: an explicit SetLayout wins;
// otherwise the nearest "_layout.<ext>" in or above the page's directory,
// if the virtual file system has one.
func resolveLayout(r *PageResult) (*Page, error) {
	if r.layout != nil {
		return r.layout, nil
	}
	if r.page.flavor != pageFlavorFile {
		return nil, nil
	}
	for _, candidate := range layoutCandidatePaths(r.page.Name, r.page.Ext) {
		layout, err := r.ctx.SoftGetPage(candidate)
		if err != nil {
			return nil, err
		}
		if layout != nil {
			return layout, nil
		}
	}
	return nil, nil
}

// explodeModel copies the top-level entries of a map Model (or the exported
// fields of a struct host object) directly
// into the PageResult args frame, so they resolve as bare names alongside
// "model" itself, visible in both the page and its layout.
func explodeModel(r *PageResult) {
	r.args.Set("model", r.model)
	switch r.model.Kind() {
	case KindMap:
		m, _ := r.model.AsMap()
		r.args.SetAll(m)
	case KindObject:
		r.args.SetAll(explodeObjectFields(r.model.Raw()))
	}
}

// transformPageBody applies, in order, the page format's body transform
// (when the page and layout extensions differ) and then any explicit
// per-result page transformers, before the body is injected into the
// layout's "page" slot.
func transformPageBody(r *PageResult, page, layout *Page, body string) (string, error) {
	var err error
	if page.Ext != layout.Ext {
		if format, ok := r.ctx.formatFor(page.Ext); ok && format.TransformBody != nil {
			body, err = format.TransformBody(body)
			if err != nil {
				return "", err
			}
		}
	}
	for _, t := range r.pageTransformers {
		body, err = t(body)
		if err != nil {
			return "", err
		}
	}
	return body, nil
}

// renderPage walks page's token stream under scope, producing the
// rendered output: literal runs pass through verbatim, placeholders are
// evaluated, HTML-escaped unless their result is a Raw value, and an
// Unresolved result falls back to the placeholder's original source text.
func renderPage(ctx *Context, r *PageResult, page *Page, scope *Scope) (string, error) {
	tokens, front := page.snapshot()
	for k, v := range front {
		scope.Set(k, v)
	}
	return renderTokens(ctx, r, tokens, scope)
}

// renderTokens renders tokens in order. WithStrictFilterErrors only governs
// recovery from a *FilterError; a *TemplateParseError, *BindingExpressionError
// or *PageNotFoundError always aborts the render, strict or not.
func renderTokens(ctx *Context, r *PageResult, tokens []parsedToken, scope *Scope) (string, error) {
	e := &evalState{ctx: ctx, result: r, scope: scope}
	out := make([]byte, 0, 256)
	for _, tok := range tokens {
		if tok.placeholder == nil {
			out = append(out, tok.literal...)
			continue
		}
		rendered, err := renderPlaceholder(e, tok.placeholder)
		if err != nil {
			var parseErr *TemplateParseError
			var bindErr *BindingExpressionError
			var notFoundErr *PageNotFoundError
			if errors.As(err, &parseErr) || errors.As(err, &bindErr) || errors.As(err, &notFoundErr) {
				return "", err
			}
			if ctx.strict {
				return "", err
			}
			if ctx.logger != nil {
				ctx.logger.Warnw("filter error, substituting empty string", "render_id", r.RenderID, "error", err)
			}
			continue
		}
		out = append(out, rendered...)
	}
	return string(out), nil
}

// renderPlaceholder evaluates one placeholder and applies the escaping
// and passthrough rules: Unresolved re-emits the original "{{ … }}" text
// verbatim, Raw values are injected without escaping, everything else is
// HTML-escaped.
func renderPlaceholder(e *evalState, p *Placeholder) (string, error) {
	v, err := e.EvalPlaceholder(p)
	if err != nil {
		return "", err
	}
	if v.IsUnresolved() {
		return p.Source, nil
	}
	if v.Kind() == KindRaw {
		return v.AsString(), nil
	}
	return html.EscapeString(v.AsString()), nil
}

// renderFragment lexes and parses src as a standalone template fragment
// and renders it under e's scope and PageResult. It backs filters such as
// forEach that expand a string expression as its own small template.
func renderFragment(e *evalState, src string) (string, error) {
	segments, err := Lex(src)
	if err != nil {
		return "", err
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
				return "", perr
			}
			tokens = append(tokens, parsedToken{placeholder: ph})
			offset += len(seg.Source)
		}
	}
	return renderTokens(e.ctx, e.result, tokens, e.scope)
}
