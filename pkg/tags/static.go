package tags

import (
	"context"
	"fmt"

	"github.com/harbormail/pagekit/pkg/model"
)

// StaticSource serves fixed tag groups from memory. Useful for tests and for
// hosts that assemble tag lists themselves.
type StaticSource struct {
	groups map[Display][]model.Tag
}

// NewStaticSource builds a source from the two sidebar groups, preserving
// slice order.
func NewStaticSource(priority, general []model.Tag) *StaticSource {
	return &StaticSource{
		groups: map[Display][]model.Tag{
			DisplayPriority: append([]model.Tag(nil), priority...),
			DisplayTag:      append([]model.Tag(nil), general...),
		},
	}
}

// ListByDisplay returns a copy of the requested group.
func (s *StaticSource) ListByDisplay(ctx context.Context, display Display) ([]model.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !display.Valid() {
		return nil, fmt.Errorf("tags: unknown display %q", display)
	}
	return append([]model.Tag(nil), s.groups[display]...), nil
}
