// Package i18n implements the render.Translator seam with YAML message
// catalogs, one file per locale, matched with golang.org/x/text semantics.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog translates gettext-style source strings using per-locale YAML
// files. Keys missing from a catalog are reported as errors so callers can
// apply their fallback policy.
type Catalog struct {
	matcher  language.Matcher
	locales  []language.Tag
	messages map[string]map[string]string
}

// Default loads the embedded locale bundle.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: embedded locales: %w", err)
	}
	return Load(sub)
}

// Load reads every *.yaml file at the root of fsys. The file name (minus
// extension) is the locale tag; the content is a flat source→translation map.
func Load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalog dir: %w", err)
	}

	catalog := &Catalog{
		messages: make(map[string]map[string]string),
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		locale := strings.TrimSuffix(name, path.Ext(name))
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: catalog %s: bad locale: %w", name, err)
		}

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read catalog %s: %w", name, err)
		}
		msgs := map[string]string{}
		if err := yaml.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("i18n: parse catalog %s: %w", name, err)
		}

		catalog.locales = append(catalog.locales, tag)
		catalog.messages[tag.String()] = msgs
	}

	if len(catalog.locales) == 0 {
		return nil, fmt.Errorf("i18n: no catalogs found")
	}

	// English first so it wins ambiguous matches.
	sort.SliceStable(catalog.locales, func(i, j int) bool {
		return isEnglish(catalog.locales[i]) && !isEnglish(catalog.locales[j])
	})
	catalog.matcher = language.NewMatcher(catalog.locales)
	return catalog, nil
}

func isEnglish(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "en"
}

// Locales returns the catalog tags in matcher priority order.
func (c *Catalog) Locales() []language.Tag {
	return append([]language.Tag(nil), c.locales...)
}

// Translate resolves key for the best-matching locale. Positional args are
// applied with Sprintf when present.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil || len(c.locales) == 0 {
		return "", fmt.Errorf("i18n: catalog is empty")
	}

	desired, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		desired = c.locales[0]
	}
	_, index, _ := c.matcher.Match(desired)
	msgs := c.messages[c.locales[index].String()]

	msg, ok := msgs[key]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", fmt.Errorf("i18n: %s: no translation for %q", c.locales[index], key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...), nil
	}
	return msg, nil
}
