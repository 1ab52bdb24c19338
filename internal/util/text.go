package util

import "strings"

// SanitizeText drops invalid UTF-8 sequences and NUL bytes from free text
// and trims surrounding whitespace.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.TrimSpace(strings.ReplaceAll(sanitized, "\x00", ""))
}
