package chrome

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeStylesheetKey is the asset key themes use to contribute a chrome
// stylesheet.
const themeStylesheetKey = "chrome.stylesheet"

// themeContext flattens a resolved theme into template data plus the themed
// stylesheet URL, if the theme provides one.
func themeContext(cfg *theme.RendererConfig) (map[string]any, string) {
	if cfg == nil {
		return nil, ""
	}

	data := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
	}
	if style := cssVarsStyle(cfg.CSSVars); style != "" {
		data["css_vars"] = style
	}

	var sheet string
	if cfg.AssetURL != nil {
		sheet = strings.TrimSpace(cfg.AssetURL(themeStylesheetKey))
	}
	return data, sheet
}

// cssVarsStyle renders theme tokens as a :root CSS block. Keys are sorted so
// output stays deterministic.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
