package stencil

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ortto/stencil/settings"
	"github.com/ortto/stencil/vfs"
)

// PageFormat is the (extension, body-transform) pair the composer uses to
// pre-process a page's body before composition.
type PageFormat struct {
	Extension     string
	TransformBody func(string) (string, error)
}

// Context is the process-wide root object: it owns
// the filter registry, the page-format registry, the virtual file system
// handle, and the default-args frame. It is created once via NewContext
// and frozen by Init; after that it is read-mostly and safe for
// concurrent renders.
type Context struct {
	mu       sync.RWMutex
	filters  *FilterRegistry
	formats  map[string]PageFormat
	fs       vfs.FileSystem
	settings settings.Provider
	args     *Scope
	debug    bool
	strict   bool
	logger   *zap.SugaredLogger

	pageMu sync.RWMutex
	pages  map[string]*Page
}

// Option configures a Context at construction time, in a fluent-option
// style.
type Option func(*Context)

// WithFileSystem supplies the virtual file system backing GetPage.
func WithFileSystem(fs vfs.FileSystem) Option { return func(c *Context) { c.fs = fs } }

// WithSettingsProvider supplies the backing store for the appSetting
// filter.
func WithSettingsProvider(p settings.Provider) Option { return func(c *Context) { c.settings = p } }

// WithDebug toggles debug-mode FilePage reload.
func WithDebug(on bool) Option { return func(c *Context) { c.debug = on } }

// WithStrictFilterErrors controls the FilterError recovery policy: true
// (the default) aborts the render on an error returned by a filter; false
// converts it to empty-string substitution. A panic inside a filter is not
// recovered.
func WithStrictFilterErrors(on bool) Option { return func(c *Context) { c.strict = on } }

// WithLogger attaches a structured logger used for recoverable warnings
// (a filter error substituted in non-strict mode, a disk watcher that
// fails to start) and debug-mode reload notices.
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Context) { c.logger = l } }

// WithDefaultArg seeds the Context args frame (culture, date formats,
// etc.) that is the outermost link of every scope chain.
func WithDefaultArg(name string, v Value) Option {
	return func(c *Context) { c.args.Set(name, v) }
}

// NewContext constructs a Context with the default filter library
// registered and applies opts. Callers must call Init before
// the first render.
func NewContext(opts ...Option) *Context {
	c := &Context{
		filters: NewFilterRegistry(),
		formats: make(map[string]PageFormat),
		fs:      vfs.NewMemoryFileSystem(),
		args:    NewScope(),
		strict:  true,
		pages:   make(map[string]*Page),
	}
	registerDefaultFilters(c.filters)
	registerBundledPageFormats(c)
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		l, _ := zap.NewProduction()
		c.logger = l.Sugar()
	}
	return c
}

// RegisterFilter defines a filter under (name, arity). Must happen before Init.
func (c *Context) RegisterFilter(name string, arity int, handlesUnknown bool, fn FilterFunc) {
	c.filters.Register(name, arity, handlesUnknown, fn)
}

// RegisterPageFormat defines a page format by file extension.
func (c *Context) RegisterPageFormat(f PageFormat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.formats[f.Extension] = f
}

// Init freezes the filter registry (registering a filter after Init is a
// programming error) and populates any unset defaults.
func (c *Context) Init() *Context {
	if _, ok := c.args.Lookup("DefaultCulture"); !ok {
		c.args.Set("DefaultCulture", String("en-US"))
	}
	if _, ok := c.args.Lookup("DefaultDateFormat"); !ok {
		c.args.Set("DefaultDateFormat", String("yyyy-MM-dd"))
	}
	if _, ok := c.args.Lookup("DefaultDateTimeFormat"); !ok {
		c.args.Set("DefaultDateTimeFormat", String("yyyy-MM-dd HH:mm:ssZ"))
	}
	c.filters.freeze()
	return c
}

// defaultCulture returns the Context-level DefaultCulture arg.
func (c *Context) defaultCulture() string {
	v, _ := c.args.Lookup("DefaultCulture")
	return v.AsString()
}

// defaultDateFormat returns the Context-level DefaultDateFormat arg.
func (c *Context) defaultDateFormat() string {
	v, _ := c.args.Lookup("DefaultDateFormat")
	return v.AsString()
}

// defaultDateTimeFormat returns the Context-level DefaultDateTimeFormat arg.
func (c *Context) defaultDateTimeFormat() string {
	v, _ := c.args.Lookup("DefaultDateTimeFormat")
	return v.AsString()
}

// formatFor returns the registered PageFormat for ext, if any.
func (c *Context) formatFor(ext string) (PageFormat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.formats[ext]
	return f, ok
}

// GetPage returns the named FilePage, lazily parsing and caching it, and
// reloading it if debug mode is on and the source's mtime has advanced.
// It is fatal (PageNotFoundError) if the file does not exist.
func (c *Context) GetPage(name string) (*Page, error) {
	c.pageMu.RLock()
	cached, ok := c.pages[name]
	c.pageMu.RUnlock()
	if ok {
		if err := c.maybeReload(cached); err != nil {
			return nil, err
		}
		return cached, nil
	}
	if !c.fs.Exists(name) {
		return nil, &PageNotFoundError{Name: name}
	}
	page, err := c.parseFilePage(name)
	if err != nil {
		return nil, err
	}
	c.pageMu.Lock()
	if existing, ok := c.pages[name]; ok {
		c.pageMu.Unlock()
		return existing, nil
	}
	c.pages[name] = page
	c.pageMu.Unlock()
	return page, nil
}

// SoftGetPage is a non-fatal lookup that returns (nil, nil) rather than
// PageNotFoundError when the page is missing.
func (c *Context) SoftGetPage(name string) (*Page, error) {
	page, err := c.GetPage(name)
	if _, ok := err.(*PageNotFoundError); ok {
		return nil, nil
	}
	return page, err
}

func (c *Context) maybeReload(p *Page) error {
	if !c.debug || p.flavor != pageFlavorFile {
		return nil
	}
	mtime, err := c.fs.LastModified(p.Name)
	if err != nil {
		return nil
	}
	if mtime.After(p.modTime) {
		reloaded, err := c.parseFilePage(p.Name)
		if err != nil {
			return err
		}
		p.mu.Lock()
		p.tokens = reloaded.tokens
		p.modTime = reloaded.modTime
		p.frontMatter = reloaded.frontMatter
		p.mu.Unlock()
		if c.logger != nil {
			c.logger.Debugw("reloaded page after mtime change", "page", p.Name)
		}
	}
	return nil
}

func (c *Context) parseFilePage(name string) (*Page, error) {
	src, err := c.fs.Read(name)
	if err != nil {
		return nil, err
	}
	mtime, err := c.fs.LastModified(name)
	if err != nil {
		mtime = time.Now()
	}
	return newPage(c, name, src, pageFlavorFile, mtime)
}

// OneTimePage creates an ephemeral, non-cache-indexed Page from literal
// source, optionally with an explicit format extension.
func (c *Context) OneTimePage(source string, ext string) (*Page, error) {
	name := "(one-time)"
	if ext != "" {
		name += ext
	}
	return newPage(c, name, source, pageFlavorOneTime, time.Now())
}

// InvalidatePage drops name from the page cache so the next GetPage
// reparses it from the file system, regardless of debug mode. A
// vfs.Watcher calls this proactively on file-change notifications; the
// mtime check in maybeReload remains the correctness backstop when no
// watcher is running.
func (c *Context) InvalidatePage(name string) {
	c.pageMu.Lock()
	delete(c.pages, name)
	c.pageMu.Unlock()
}

// WithDiskWatcher starts an fsnotify-backed vfs.Watcher over root and
// wires its change notifications into InvalidatePage. The watcher it
// starts is not exposed and runs for the life of the process; a caller
// that needs to stop a watcher builds one with vfs.NewWatcher instead.
func WithDiskWatcher(root string) Option {
	return func(c *Context) {
		w, err := vfs.NewWatcher(root, c.InvalidatePage)
		if err != nil {
			if c.logger != nil {
				c.logger.Warnw("failed to start disk watcher", "root", root, "error", err)
			}
			return
		}
		w.Start()
	}
}
