// Package pagekit renders Harbormail webmail pages: a shared document shell
// with navigation, sidebar tags, and tool panels wrapped around per-command
// content.
package pagekit

import (
	"context"
	"io/fs"

	"github.com/harbormail/pagekit/pkg/model"
	"github.com/harbormail/pagekit/pkg/orchestrator"
	"github.com/harbormail/pagekit/pkg/render"
	"github.com/harbormail/pagekit/pkg/renderers/chrome"
)

// RenderContext aliases the page input exported via the root package for
// convenience.
type RenderContext = model.RenderContext

// RenderOptions describes per-request inputs renderers receive alongside the
// page context.
type RenderOptions = render.RenderOptions

// ContentFunc produces the inner content markup for a page.
type ContentFunc = render.ContentFunc

// Request aliases the orchestrator request type.
type Request = orchestrator.Request

// New exposes the orchestrator constructor from the top-level module.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderPage builds a default pipeline and renders the requested page. It is
// the simplest entry point for callers that just want HTML output.
func RenderPage(ctx context.Context, req orchestrator.Request, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, req)
}

// EmbeddedTemplates exposes the built-in chrome layout templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return chrome.TemplatesFS()
}

// AssetsFS exposes the bundled chrome stylesheet and static assets.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(pagekit.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return chrome.AssetsFS()
}
