package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeBlank trims s and reports whether anything is left. Form inputs
// that are empty or whitespace-only are treated as absent.
func NormalizeBlank(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}

	return trimmed, true
}

// NormalizeWhitespace replaces runs of whitespace with a single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates str to maxRunes runes, appending "..." when cut.
func TruncateString(str string, maxRunes int) string {
	if utf8.RuneCountInString(str) <= maxRunes {
		return str
	}

	return string([]rune(str)[:maxRunes]) + "..."
}
