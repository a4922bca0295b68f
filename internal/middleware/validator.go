package middleware

import (
	"path/filepath"
	"strings"
)

// Input sanitization utilities

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// SanitizeFilename keeps the base name of an uploaded file and strips
// separators and control characters.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(SanitizeString(name), "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return "upload"
	}
	return name
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 50 // default
	}
	if limit > 200 {
		return 200 // max limit
	}
	return limit
}
