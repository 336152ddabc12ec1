/**
 * @description
 * Prop filter.
 * Excludes undesired stat categories (partial-quarter props, two-pointer
 * variants, rebound splits, fantasy scores) before props reach storage,
 * display, or the snapshot cache. The exclusion list is configuration.
 */

package projection

import "strings"

// Filter matches stat types against an exclusion list.
type Filter struct {
	excluded []string
}

// NewFilter builds a filter from the configured exclusion substrings.
func NewFilter(excluded []string) *Filter {
	lowered := make([]string, 0, len(excluded))
	for _, e := range excluded {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			lowered = append(lowered, strings.ToLower(trimmed))
		}
	}
	return &Filter{excluded: lowered}
}

// IsExcluded reports whether a stat type matches any exclusion substring,
// case-insensitively.
func (f *Filter) IsExcluded(statType string) bool {
	st := strings.ToLower(statType)
	for _, e := range f.excluded {
		if strings.Contains(st, e) {
			return true
		}
	}
	return false
}
