package render

import (
	"context"

	"github.com/harbormail/pagekit/pkg/model"
)

// Renderer converts a RenderContext into a byte representation (a full HTML
// document, or a bare content fragment when the context requests it).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.RenderContext, options RenderOptions) ([]byte, error)
}

// ContentFunc produces the inner content block for a page. It is the explicit
// override point for the content slot: callers supply one per request, and
// renderers fall back to a literal rendering of the context result when it is
// nil.
type ContentFunc func(ctx context.Context, page model.RenderContext) (string, error)
