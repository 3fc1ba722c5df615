package chrome

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html templates/partials/*.html
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the embedded default stylesheet for the page chrome.
	StylesheetName = "pagekit-chrome.css"
)

// TemplatesFS exposes the embedded layout and partial bundle, rooted at the
// layout itself, so callers can extend the built-in page chrome.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the embedded static asset bundle (CSS) so callers can
// serve it over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
