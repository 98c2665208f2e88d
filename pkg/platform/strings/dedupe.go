// Package strings provides string-set helpers used for scope and claim handling.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
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

// Fields splits space-delimited token lists ("openid profile") into
// individual tokens. Every element of values may itself hold several tokens.
//
// Example:
//
//	Fields([]string{"openid profile", " email"})
//	// Returns: []string{"openid", "profile", "email"}
func Fields(values ...string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

// Union returns existing followed by every token of additions not already
// present. The result never contains duplicates and neither input is
// modified, so Union(Union(a, b), b) equals Union(a, b).
func Union(existing []string, additions ...string) []string {
	merged := make([]string, 0, len(existing)+len(additions))
	merged = append(merged, existing...)
	merged = append(merged, Fields(additions...)...)
	return DedupeAndTrim(merged)
}

// Join renders a token set in its space-delimited wire form.
func Join(tokens []string) string {
	return strings.Join(DedupeAndTrim(tokens), " ")
}
