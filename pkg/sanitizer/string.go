package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize strips leading/trailing whitespace, collapses internal
// whitespace runs to a single space, and drops control characters.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeWorkspaceName cleans a workspace name before validation so that
// " Desk   7 " and "Desk 7" refer to the same resource.
func NormalizeWorkspaceName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
