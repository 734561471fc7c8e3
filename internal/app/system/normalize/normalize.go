// Package normalize canonicalizes user input before it is stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Name trims a display name and preserves its case.
func Name(s string) string { return strings.TrimSpace(s) }

// Role lowercases and trims a role name.
func Role(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Status lowercases and trims a status value.
func Status(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Selection normalizes a single filter-panel selection. The "all" choice
// (any case) becomes "", meaning no constraint.
func Selection(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

// Selections normalizes multi-select values. Each value may itself be a
// comma-separated list. Blanks are dropped, and an "all" anywhere clears the
// whole selection.
func Selections(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if strings.EqualFold(part, "all") {
				return nil
			}
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
