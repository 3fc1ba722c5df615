package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeSelector aliases the go-theme selector contract so options stay
// readable.
type themeSelector = theme.ThemeSelector

// WithThemeSelector registers a go-theme selector so renders receive resolved
// tokens, CSS variables and asset URLs.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant applied when a request does
// not name its own.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := strings.TrimSpace(req.ThemeName)
	variant := strings.TrimSpace(req.ThemeVariant)
	if name == "" {
		name = o.themeName
		if variant == "" {
			variant = o.themeVariant
		}
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	return rendererConfig(selection), nil
}

// rendererConfig flattens a theme selection into the renderer-facing shape:
// variant values overlay the base manifest, tokens become CSS variables, and
// asset keys resolve against the manifest prefix.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := copyStringMap(manifest.Tokens)
	partials := copyStringMap(manifest.Templates)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if selection.Variant != "" {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			overlayStringMap(tokens, variant.Tokens)
			overlayStringMap(partials, variant.Templates)
			overlayStringMap(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials

	if len(tokens) > 0 {
		cssVars := make(map[string]string, len(tokens))
		for key, value := range tokens {
			cssVars["--"+key] = value
		}
		cfg.CSSVars = cssVars
	}

	cfg.AssetURL = func(key string) string {
		file := files[strings.TrimSpace(key)]
		if file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
	}

	return cfg
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func overlayStringMap(dst, overlay map[string]string) {
	for key, value := range overlay {
		dst[key] = value
	}
}
