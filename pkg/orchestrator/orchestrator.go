package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/harbormail/pagekit/pkg/assets"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/render"
	"github.com/harbormail/pagekit/pkg/renderers/chrome"
	"github.com/harbormail/pagekit/pkg/tags"
)

const defaultRendererName = "chrome"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTagSource injects the sidebar tag queries.
func WithTagSource(source tags.Source) Option {
	return func(o *Orchestrator) {
		o.tagSource = source
	}
}

// WithAssets injects the asset registry consulted for stylesheet and script
// URLs.
func WithAssets(registry *assets.Registry) Option {
	return func(o *Orchestrator) {
		o.assetRegistry = registry
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTranslator injects the translation collaborator.
func WithTranslator(t render.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = t
	}
}

// WithDefaultLocale sets the locale used when a request omits one.
func WithDefaultLocale(locale string) Option {
	return func(o *Orchestrator) {
		o.defaultLocale = locale
	}
}

// Orchestrator coordinates one page render: it runs the two sidebar tag
// queries, the asset lookups, theme resolution, and dispatches to a named
// renderer. It applies sensible defaults (chrome renderer, embedded
// stylesheet) while remaining open to dependency injection.
type Orchestrator struct {
	tagSource       tags.Source
	assetRegistry   *assets.Registry
	registry        *render.Registry
	defaultRenderer string
	translator      render.Translator
	defaultLocale   string
	themeSelector   themeSelector
	themeName       string
	themeVariant    string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render one page.
type Request struct {
	// Page is the render context assembled by the host for this request.
	Page model.RenderContext

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Content overrides the inner content block for this render.
	Content render.ContentFunc

	// Locale selects the translation catalog. Empty falls back to the
	// orchestrator default.
	Locale string

	// ThemeName and ThemeVariant override the configured theme selection.
	ThemeName    string
	ThemeVariant string
}

// Render executes the tag queries → asset lookup → theme resolution →
// renderer sequence and returns the rendered bytes.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	options := render.RenderOptions{
		Content:    req.Content,
		Locale:     o.localeFor(req),
		Translator: o.translator,
	}

	if o.tagSource != nil && !req.Page.HTMLInJSON {
		priority, err := o.tagSource.ListByDisplay(ctx, tags.DisplayPriority)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: list priority tags: %w", err)
		}
		general, err := o.tagSource.ListByDisplay(ctx, tags.DisplayTag)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: list tags: %w", err)
		}
		options.PriorityTags = priority
		options.Tags = general
	}

	if o.assetRegistry != nil {
		options.Stylesheets = o.assetRegistry.Lookup(assets.CategoryStylesheet)
		options.Scripts = o.assetRegistry.Lookup(assets.CategoryScript)
	}

	themeCfg, err := o.resolveTheme(req)
	if err != nil {
		return nil, err
	}
	options.Theme = themeCfg

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, req.Page, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render page: %w", err)
	}

	return output, nil
}

func (o *Orchestrator) localeFor(req Request) string {
	if req.Locale != "" {
		return req.Locale
	}
	return o.defaultLocale
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := chrome.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.assetRegistry == nil {
		o.assetRegistry = assets.NewRegistry()
		o.assetRegistry.Register(assets.CategoryStylesheet, "/assets/"+chrome.StylesheetName)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
