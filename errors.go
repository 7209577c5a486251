package stencil

import "fmt"

// SourceError is a template-level error that can report where in the
// source it occurred. ParseTemplate/ParseAndRender return this interface
// rather than a plain error.
type SourceError interface {
	error
	SourceOffset() int
}

// TemplateParseError reports a lexer/parser failure: an unterminated
// placeholder or a malformed filter call. It is always fatal.
type TemplateParseError struct {
	Offset  int
	Message string
}

func (e *TemplateParseError) Error() string {
	return fmt.Sprintf("template parse error at offset %d: %s", e.Offset, e.Message)
}

func (e *TemplateParseError) SourceOffset() int { return e.Offset }

// PageNotFoundError is returned by Context.GetPage for a missing page.
// Always fatal.
type PageNotFoundError struct {
	Name string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s", e.Name)
}

func (e *PageNotFoundError) SourceOffset() int { return 0 }

// BindingExpressionError is raised when a bound path attempts to invoke a
// method on a host object. Always fatal; carries the offending
// expression text.
type BindingExpressionError struct {
	Offset     int
	Expression string
}

func (e *BindingExpressionError) Error() string {
	return fmt.Sprintf("binding expression error: method invocation is forbidden in %q", e.Expression)
}

func (e *BindingExpressionError) SourceOffset() int { return e.Offset }

// FilterError wraps an error returned from inside a filter body. By
// default the render aborts; WithStrictFilterErrors(false) converts it to
// empty-string substitution instead. Panics are not wrapped.
type FilterError struct {
	Offset int
	Filter string
	Cause  error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %q failed: %s", e.Filter, e.Cause)
}

func (e *FilterError) SourceOffset() int { return e.Offset }

func (e *FilterError) Unwrap() error { return e.Cause }
