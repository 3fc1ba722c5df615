// Package model defines the view model consumed by page renderers: the
// per-request RenderContext plus the Tag shapes surfaced in the sidebar.
package model
