package chrome

import (
	"strings"

	"github.com/harbormail/pagekit/pkg/model"
)

// commandClass maps a normalized command to the body CSS class, e.g.
// "tag/list" becomes "command-tag-list". Anything outside [a-z0-9-] is
// dropped so the class stays selector-safe.
func commandClass(command string) string {
	var b strings.Builder
	b.WriteString("command-")
	for _, r := range strings.ToLower(command) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '/' || r == ' ' || r == '_' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Template loops expect a sequence, never null, so nil slices become empty
// ones before they reach the engine.

func nonNilTags(in []model.Tag) []model.Tag {
	if in == nil {
		return []model.Tag{}
	}
	return in
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
