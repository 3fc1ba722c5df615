package chrome

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/render"
	rendertemplate "github.com/harbormail/pagekit/pkg/render/template"
	gotemplate "github.com/harbormail/pagekit/pkg/render/template/gotemplate"
)

const layoutTemplate = "layout.html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	debugPolicy      *bluemonday.Policy
	appName          string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDebugPolicy overrides the sanitizer applied to the debug panel text.
// The default strips all markup, since debug output routinely quotes raw
// message HTML.
func WithDebugPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.debugPolicy = policy
		}
	}
}

// WithAppName overrides the product name rendered in the logo slot and the
// document title suffix.
func WithAppName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.appName = trimmed
		}
	}
}

// Renderer produces the standard webmail page chrome: header bar, sidebar
// navigation, tag lists, content slot, modal skeleton and debug panel.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	debugPolicy *bluemonday.Policy
	appName     string
}

// New constructs the chrome renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		debugPolicy: bluemonday.StrictPolicy(),
		appName:     "Harbormail",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	registerPageFilters()

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("chrome renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		debugPolicy: cfg.debugPolicy,
		appName:     cfg.appName,
	}, nil
}

func (r *Renderer) Name() string {
	return "chrome"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page. Fragment mode (page.HTMLInJSON) returns only the
// inner content block; otherwise the content is wrapped in the full document
// chrome.
func (r *Renderer) Render(ctx context.Context, page model.RenderContext, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("chrome renderer: template renderer is nil")
	}

	content, err := r.renderContent(ctx, page, options)
	if err != nil {
		return nil, fmt.Errorf("chrome renderer: render content block: %w", err)
	}

	if page.HTMLInJSON {
		return []byte(content), nil
	}

	data := r.layoutData(page, options, content)
	rendered, err := r.templates.RenderTemplate(layoutTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("chrome renderer: render layout: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) renderContent(ctx context.Context, page model.RenderContext, options render.RenderOptions) (string, error) {
	if options.Content != nil {
		return options.Content(ctx, page)
	}
	return defaultContent(page)
}

// defaultContent is the fallback content block: a literal, escaped rendering
// of the command result. The encoder's HTML escaping is disabled so angle
// brackets reach html.EscapeString as-is instead of as < sequences.
func defaultContent(page model.RenderContext) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page.Result); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	payload := strings.TrimRight(buf.String(), "\n")
	return "<pre class=\"results\">" + html.EscapeString(payload) + "</pre>", nil
}

func (r *Renderer) layoutData(page model.RenderContext, options render.RenderOptions, content string) map[string]any {
	logged := page.Logged
	if logged != "" && r.debugPolicy != nil {
		logged = r.debugPolicy.Sanitize(logged)
	}

	stylesheets := append(make([]string, 0, len(options.Stylesheets)+1), options.Stylesheets...)
	themeData, themedSheet := themeContext(options.Theme)
	if themedSheet != "" {
		stylesheets = append(stylesheets, themedSheet)
	}

	data := map[string]any{
		"app_name":      r.appName,
		"command":       page.NormalizedCommand(),
		"command_class": commandClass(page.NormalizedCommand()),
		"args":          page.Args,
		"kwargs":        page.Kwargs,
		"result":        page.Result,
		"name":          page.Name,
		"mailpile_size": page.IndexSize,
		"csrf":          page.CSRF,
		"http_host":     page.HTTPHost,
		"http_hostname": page.HTTPHostname,
		"http_method":   page.HTTPMethod,
		"title":         page.Title,
		"url_protocol":  page.URLProtocol,
		"logged":        logged,
		"content":       content,
		"tags_priority": nonNilTags(options.PriorityTags),
		"tags":          nonNilTags(options.Tags),
		"stylesheets":   stylesheets,
		"scripts":       nonNilStrings(options.Scripts),
		"tools":         toolsPanel(page.NormalizedCommand()),
		"theme":         themeData,
	}

	for name, fn := range render.TemplateI18nFuncs(options.Locale, options.Translator, render.TemplateFuncsConfig{
		OnMissing: options.OnMissing,
	}) {
		data[name] = fn
	}

	return data
}

// toolsPanel maps a command (or command family) to the tools partial shown
// above the content slot. The chain is closed and ordered: first match wins,
// unmatched commands get no panel.
func toolsPanel(command string) string {
	switch {
	case command == "search" || strings.HasPrefix(command, "search/"):
		return "search"
	case command == "contact" || command == "contact/list" || command == "contact/add":
		return "contacts"
	case command == "tag" || command == "tag/list" || command == "tag/add":
		return "tags"
	case command == "message" || command == "message/draft":
		return "message"
	default:
		return ""
	}
}
