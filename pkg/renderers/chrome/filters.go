package chrome

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// navigationClass is the CSS class marking the active top-level navigation
// item. Matching is exact: no prefix or hierarchy matching.
const navigationClass = "navigation-on"

func registerPageFilters() {
	if !pongo2.FilterExists("friendly_number") {
		_ = pongo2.RegisterFilter("friendly_number", filterFriendlyNumber)
	}
	if !pongo2.FilterExists("navigation_on") {
		_ = pongo2.RegisterFilter("navigation_on", filterNavigationOn)
	}
}

// filterNavigationOn renders the highlighting class when the current command
// equals the filter parameter, e.g. {{ command|navigation_on:"tag/list" }}.
func filterNavigationOn(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if param == nil {
		return pongo2.AsValue(""), nil
	}
	if strings.TrimSpace(in.String()) == strings.TrimSpace(param.String()) {
		return pongo2.AsValue(navigationClass), nil
	}
	return pongo2.AsValue(""), nil
}

func filterFriendlyNumber(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(FriendlyNumber(in.Integer())), nil
}

// FriendlyNumber abbreviates large counts for the sidebar notification
// badges: 950 stays "950", 1500 becomes "1.5K", 1200000 becomes "1.2M".
func FriendlyNumber(n int) string {
	if n < 0 {
		return "-" + FriendlyNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	value := float64(n)
	suffixes := []string{"K", "M", "B"}
	suffix := ""
	formatted := ""
	for i, s := range suffixes {
		value /= 1000
		suffix = s
		formatted = fmt.Sprintf("%.1f", value)
		if i == len(suffixes)-1 {
			break
		}
		// Values that round up to 1000.0 promote to the next suffix, so
		// 999999 renders as "1M" rather than "1000K".
		if value < 1000 && formatted != "1000.0" {
			break
		}
	}

	formatted = strings.TrimSuffix(formatted, ".0")
	return formatted + suffix
}
