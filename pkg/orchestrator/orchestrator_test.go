package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/harbormail/pagekit/pkg/assets"
	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/render"
	"github.com/harbormail/pagekit/pkg/tags"
)

type captureRenderer struct {
	name    string
	page    model.RenderContext
	options render.RenderOptions
	calls   int
}

func (r *captureRenderer) Name() string {
	if r.name == "" {
		return "capture"
	}
	return r.name
}

func (r *captureRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *captureRenderer) Render(_ context.Context, page model.RenderContext, opts render.RenderOptions) ([]byte, error) {
	r.page = page
	r.options = opts
	r.calls++
	return []byte(r.Name()), nil
}

type failingTagSource struct{}

func (failingTagSource) ListByDisplay(context.Context, tags.Display) ([]model.Tag, error) {
	return nil, fmt.Errorf("tag store down")
}

func newTestOrchestrator(renderer *captureRenderer, options ...Option) *Orchestrator {
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	base := []Option{
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
	}
	return New(append(base, options...)...)
}

func TestOrchestrator_PassesTagGroupsToRenderer(t *testing.T) {
	priority := []model.Tag{{Slug: "inbox", Name: "Inbox"}, {Slug: "drafts", Name: "Drafts"}}
	general := []model.Tag{{Slug: "work", Name: "Work"}}

	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer,
		WithTagSource(tags.NewStaticSource(priority, general)),
	)

	_, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "page"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if diff := cmp.Diff(priority, renderer.options.PriorityTags); diff != "" {
		t.Errorf("priority tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(general, renderer.options.Tags); diff != "" {
		t.Errorf("general tags mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_SkipsTagQueriesForFragments(t *testing.T) {
	renderer := &captureRenderer{}
	// A failing source proves fragment renders never consult it.
	orch := newTestOrchestrator(renderer, WithTagSource(failingTagSource{}))

	_, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "message", HTMLInJSON: true},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.options.PriorityTags != nil || renderer.options.Tags != nil {
		t.Fatal("expected no tag groups for fragment render")
	}
}

func TestOrchestrator_TagSourceErrorPropagates(t *testing.T) {
	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer, WithTagSource(failingTagSource{}))

	_, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "page"},
	})
	if err == nil {
		t.Fatal("expected tag source error")
	}
	if !strings.Contains(err.Error(), "tag store down") {
		t.Fatalf("expected wrapped source error, got: %v", err)
	}
	if renderer.calls != 0 {
		t.Fatal("renderer must not run when tag queries fail")
	}
}

func TestOrchestrator_PassesAssetsToRenderer(t *testing.T) {
	registry := assets.NewRegistry()
	registry.Register(assets.CategoryStylesheet, "/assets/base.css", "/assets/theme.css")
	registry.Register(assets.CategoryScript, "/assets/app.js")

	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer, WithAssets(registry))

	_, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "page"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	wantSheets := []string{"/assets/base.css", "/assets/theme.css"}
	if diff := cmp.Diff(wantSheets, renderer.options.Stylesheets); diff != "" {
		t.Errorf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/assets/app.js"}, renderer.options.Scripts); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_LocaleSelection(t *testing.T) {
	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer, WithDefaultLocale("en-US"))

	_, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "page"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.options.Locale != "en-US" {
		t.Fatalf("expected default locale, got %q", renderer.options.Locale)
	}

	_, err = orch.Render(context.Background(), Request{
		Page:   model.RenderContext{Command: "page"},
		Locale: "is",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.options.Locale != "is" {
		t.Fatalf("expected request locale to win, got %q", renderer.options.Locale)
	}
}

func TestOrchestrator_RendererSelection(t *testing.T) {
	chromeStub := &captureRenderer{name: "chrome"}
	minimal := &captureRenderer{name: "minimal"}

	registry := render.NewRegistry()
	registry.MustRegister(chromeStub)
	registry.MustRegister(minimal)

	orch := New(WithRegistry(registry), WithDefaultRenderer("chrome"))

	output, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "page"},
	})
	if err != nil {
		t.Fatalf("render default: %v", err)
	}
	if string(output) != "chrome" {
		t.Fatalf("expected default renderer, got %q", output)
	}

	output, err = orch.Render(context.Background(), Request{
		Page:     model.RenderContext{Command: "page"},
		Renderer: "minimal",
	})
	if err != nil {
		t.Fatalf("render named: %v", err)
	}
	if string(output) != "minimal" {
		t.Fatalf("expected named renderer, got %q", output)
	}

	if _, err := orch.Render(context.Background(), Request{
		Page:     model.RenderContext{Command: "page"},
		Renderer: "missing",
	}); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestOrchestrator_FallsBackToOnlyRenderer(t *testing.T) {
	only := &captureRenderer{name: "minimal"}
	registry := render.NewRegistry()
	registry.MustRegister(only)

	// Default renderer name is not registered; the single registered
	// renderer serves the request instead.
	orch := New(WithRegistry(registry), WithDefaultRenderer("chrome"))

	output, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "page"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "minimal" {
		t.Fatalf("expected fallback renderer, got %q", output)
	}
}

func TestOrchestrator_ContentOverrideReachesRenderer(t *testing.T) {
	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer)

	content := func(_ context.Context, _ model.RenderContext) (string, error) {
		return "custom", nil
	}
	_, err := orch.Render(context.Background(), Request{
		Page:    model.RenderContext{Command: "page"},
		Content: content,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if renderer.options.Content == nil {
		t.Fatal("expected content override to reach the renderer")
	}
}

func TestOrchestrator_RequiresContext(t *testing.T) {
	renderer := &captureRenderer{}
	orch := newTestOrchestrator(renderer)

	if _, err := orch.Render(nil, Request{Page: model.RenderContext{Command: "page"}}); err == nil { //nolint:staticcheck
		t.Fatal("expected error for nil context")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Render(cancelled, Request{Page: model.RenderContext{Command: "page"}}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestOrchestrator_DefaultsRenderFullPage(t *testing.T) {
	orch := New()

	output, err := orch.Render(context.Background(), Request{
		Page: model.RenderContext{Command: "tag/list"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(output)
	if !strings.Contains(got, "<html") {
		t.Fatal("expected full document from default pipeline")
	}
	if !strings.Contains(got, "/assets/pagekit-chrome.css") {
		t.Fatal("expected default stylesheet wired through the asset registry")
	}
}
