// Package tags defines the sidebar tag queries the page chrome depends on,
// plus in-memory and SQLite-backed implementations.
package tags

import (
	"context"

	"github.com/harbormail/pagekit/pkg/model"
)

// Display partitions tags into the two sidebar groups.
type Display string

const (
	// DisplayPriority tags render in the pinned group above the divider.
	DisplayPriority Display = "priority"
	// DisplayTag tags render in the general group below the divider.
	DisplayTag Display = "tag"
)

// Valid reports whether the display value belongs to the closed set.
func (d Display) Valid() bool {
	switch d {
	case DisplayPriority, DisplayTag:
		return true
	default:
		return false
	}
}

// Source answers the two ordered tag queries. Implementations must return
// tags in a stable display order; the renderer never re-sorts.
type Source interface {
	ListByDisplay(ctx context.Context, display Display) ([]model.Tag, error)
}
