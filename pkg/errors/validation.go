package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDiagramID validates a diagram identifier for safety and
// correctness. Identifiers travel through URLs, cache keys and store keys,
// so the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path traversal sequences (.., //, backslash)
//   - Maximum length of 256 characters
func ValidateDiagramID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "diagram id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "diagram id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "diagram id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "diagram id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// nodeIDRegex matches node identifiers the wire formats and DOT emitter
// handle without surprises.
var nodeIDRegex = regexp.MustCompile(`^[^\x00-\x1f\x7f]+$`)

// ValidateNodeID validates a node identifier within a spec.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSpec, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidSpec, "node id too long (max 256 characters)")
	}

	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidSpec, "node id contains control characters: %q", id)
	}

	return nil
}

// ValidatePath validates a file path supplied on the command line or over
// the API for safety. It prevents path traversal attacks and ensures
// reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
