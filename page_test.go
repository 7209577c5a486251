package stencil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ortto/stencil/vfs"
)

func newTestContext(t *testing.T, files map[string]string) *Context {
	t.Helper()
	fs := vfs.NewMemoryFileSystem()
	for name, content := range files {
		require.NoError(t, fs.Write(name, content))
	}
	return NewContext(WithFileSystem(fs)).Init()
}

func TestPageResultRendersWithNoLayout(t *testing.T) {
	ctx := newTestContext(t, map[string]string{
		"/index.html": "Hello {{ name }}!",
	})
	page, err := ctx.GetPage("/index.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	result.SetArg("name", String("World"))
	out, err := result.Render()
	require.NoError(t, err)
	require.Equal(t, "Hello World!", out)
}

func TestPageResultAppliesNearestLayout(t *testing.T) {
	ctx := newTestContext(t, map[string]string{
		"/blog/_layout.html": "<header>{{ page }}</header>",
		"/blog/post.html":    "Post: {{ title }}",
	})
	page, err := ctx.GetPage("/blog/post.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	result.SetArg("title", String("Launch"))
	out, err := result.Render()
	require.NoError(t, err)
	require.Equal(t, "<header>Post: Launch</header>", out)
}

func TestPageResultExplicitLayoutWins(t *testing.T) {
	ctx := newTestContext(t, map[string]string{
		"/blog/_layout.html": "default: {{ page }}",
		"/blog/post.html":    "Post",
		"/special_layout.html": "special: {{ page }}",
	})
	page, err := ctx.GetPage("/blog/post.html")
	require.NoError(t, err)
	layout, err := ctx.GetPage("/special_layout.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	result.SetLayout(layout)
	out, err := result.Render()
	require.NoError(t, err)
	require.Equal(t, "special: Post", out)
}

func TestPageResultModelExplosionMap(t *testing.T) {
	ctx := newTestContext(t, map[string]string{
		"/index.html": "{{ model.title }} / {{ title }}",
	})
	page, err := ctx.GetPage("/index.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	result.SetModel(Map(map[string]Value{"title": String("Post")}))
	out, err := result.Render()
	require.NoError(t, err)
	require.Equal(t, "Post / Post", out)
}

func TestPageResultModelExplosionStruct(t *testing.T) {
	type Model struct{ Title string }
	ctx := newTestContext(t, map[string]string{
		"/index.html": "{{ model.Title }} / {{ Title }}",
	})
	page, err := ctx.GetPage("/index.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	result.SetModel(FromNative(Model{Title: "Launch"}))
	out, err := result.Render()
	require.NoError(t, err)
	require.Equal(t, "Launch / Launch", out)
}

func TestPageResultPartial(t *testing.T) {
	ctx := newTestContext(t, map[string]string{
		"/index.html":   `{{ "/_byline.html" | partial(vars) }}`,
		"/_byline.html": "by {{ author }}",
	})
	page, err := ctx.GetPage("/index.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	result.SetArg("vars", Map(map[string]Value{"author": String("Ada")}))
	out, err := result.Render()
	require.NoError(t, err)
	require.Equal(t, "by Ada", out)
}

func TestPageResultCannotRenderTwice(t *testing.T) {
	ctx := newTestContext(t, map[string]string{"/index.html": "hi"})
	page, err := ctx.GetPage("/index.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	_, err = result.Render()
	require.NoError(t, err)
	_, err = result.Render()
	require.Error(t, err)
}

func TestPageCannotBeItsOwnLayout(t *testing.T) {
	ctx := newTestContext(t, map[string]string{
		"/_layout.html": "{{ page }}",
	})
	page, err := ctx.GetPage("/_layout.html")
	require.NoError(t, err)
	result := ctx.NewPageResult(page)
	_, err = result.Render()
	require.Error(t, err)
}

func TestGetPageMissingIsFatal(t *testing.T) {
	ctx := newTestContext(t, nil)
	_, err := ctx.GetPage("/nope.html")
	require.Error(t, err)
	var notFound *PageNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSoftGetPageMissingReturnsNil(t *testing.T) {
	ctx := newTestContext(t, nil)
	page, err := ctx.SoftGetPage("/nope.html")
	require.NoError(t, err)
	require.Nil(t, page)
}

func TestRenderIDIsUniquePerPageResult(t *testing.T) {
	ctx := newTestContext(t, map[string]string{"/index.html": "hi"})
	page, err := ctx.GetPage("/index.html")
	require.NoError(t, err)
	r1 := ctx.NewPageResult(page)
	r2 := ctx.NewPageResult(page)
	require.NotEmpty(t, r1.RenderID)
	require.NotEqual(t, r1.RenderID, r2.RenderID)
}
