// Package template declares the template-engine seam used by page renderers.
// The gotemplate subpackage provides the pongo2-backed implementation; tests
// substitute stubs.
package template
