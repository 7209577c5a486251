package stencil

import "github.com/microcosm-cc/bluemonday"

// registerBundledPageFormats registers the two page formats shipped by
// default: "html-safe", which sanitizes a page's rendered body through a
// bluemonday policy before injection into a differently-extensioned
// layout, and "markdown", a stub whose real transform is the external
// collaborator this package doesn't specify — hosts that render
// markdown pages are expected to override it with RegisterPageFormat.
func registerBundledPageFormats(c *Context) {
	policy := bluemonday.UGCPolicy()
	c.RegisterPageFormat(PageFormat{
		Extension: ".html-safe",
		TransformBody: func(body string) (string, error) {
			return policy.Sanitize(body), nil
		},
	})
	c.RegisterPageFormat(PageFormat{
		Extension: ".md",
		TransformBody: func(body string) (string, error) {
			return body, nil
		},
	})
}
