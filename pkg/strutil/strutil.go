// Package strutil provides string manipulation utilities shared across the
// catalog domain and transports.
package strutil

import "strings"

// Trim removes surrounding whitespace. Thin wrapper kept so callers in the
// domain don't import strings for a single call site.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  new ", "used", "new", "", "  "})
//	// Returns: []string{"new", "used"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// DedupeAndTrimLower is like DedupeAndTrim but also lowercases each element.
// Useful for case-insensitive deduplication.
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	lowered := make([]string, len(values))
	for n, v := range values {
		lowered[n] = strings.ToLower(v)
	}

	return DedupeAndTrim(lowered)
}
