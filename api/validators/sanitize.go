package validators

import "strings"

// SanitizeString trims whitespace and caps the length of free-form query
// input such as the template region filter.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
