package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Orderings accepted by list queries; repositories return oldest first.
const (
	OrderOldestFirst = "created_at"
	OrderNewestFirst = "-created_at"
)
