package utils

import "strings"

// Preview prepares s for a log field: whitespace runs collapse to single
// spaces and the result is cut to limit runes with a trailing ellipsis.
// A non-positive limit yields an empty string.
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
