// Package orchestrator wires the page rendering pipeline: tag queries,
// asset lookups, theme resolution and renderer dispatch behind one Render
// call.
package orchestrator
