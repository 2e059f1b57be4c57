package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize collapses internal whitespace runs into single spaces and
// trims the ends. Safe for human-readable fields (names, addresses, notes).
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeCity(city string) string {
	return strings.ToLower(TrimAndNormalize(city))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeFreeText is for longer optional fields such as special requests
// and cancellation reasons.
func NormalizeFreeText(s string) string {
	return TrimAndNormalize(s)
}
