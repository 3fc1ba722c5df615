// Package assets maps asset categories to ordered URL lists for the page
// chrome: the head iterates "stylesheet", the closing block "javascript".
package assets

import (
	"strings"
	"sync"
)

// Categories the page chrome consumes.
const (
	CategoryStylesheet = "stylesheet"
	CategoryScript     = "javascript"
)

// Registry stores asset URLs per category, preserving registration order.
type Registry struct {
	mu         sync.RWMutex
	categories map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		categories: make(map[string][]string),
	}
}

// Register appends URLs to a category, skipping blanks and duplicates.
func (r *Registry) Register(category string, urls ...string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.categories[category]
	seen := make(map[string]struct{}, len(existing))
	for _, url := range existing {
		seen[url] = struct{}{}
	}
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		existing = append(existing, url)
	}
	r.categories[category] = existing
}

// Lookup returns a copy of the category's URLs in registration order.
func (r *Registry) Lookup(category string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.categories[strings.TrimSpace(category)]...)
}

// Categories returns the known category names, unordered.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.categories))
	for category := range r.categories {
		out = append(out, category)
	}
	return out
}
