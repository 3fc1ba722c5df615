package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/harbormail/pagekit/pkg/model"
)

// RenderOptions carries per-request data that renderers consume alongside the
// RenderContext: the pre-queried sidebar tag groups, resolved asset URLs, the
// content override, and localization hooks. The zero value is usable; missing
// pieces degrade to empty output rather than errors.
type RenderOptions struct {
	// Content overrides the inner content block. When nil, renderers emit
	// their default literal rendering of the context result.
	Content ContentFunc

	// PriorityTags and Tags are the two sidebar tag groups, in the exact
	// order returned by the tag queries. Renderers must not re-sort them.
	PriorityTags []model.Tag
	Tags         []model.Tag

	// Stylesheets and Scripts are ordered asset URLs emitted into the
	// document head and the closing script block respectively.
	Stylesheets []string
	Scripts     []string

	// Locale selects the translation catalog for this render.
	Locale string
	// Translator resolves source strings into localized text. Nil means
	// strings pass through untranslated.
	Translator Translator
	// OnMissing controls what a failed translation renders as. Defaults to
	// the source string itself.
	OnMissing MissingTranslationHandler

	// Theme carries the resolved theme configuration (CSS variables, asset
	// resolver) when a theme selector is configured.
	Theme *theme.RendererConfig
}
