package errors

import (
	"strings"
	"unicode"
)

// MaxCopiesPerPage is the largest page density the layout supports.
const MaxCopiesPerPage = 3

// ValidateCopiesPerPage checks that n lies in [1, limit].
// A limit outside [1, MaxCopiesPerPage] is treated as MaxCopiesPerPage.
// Out-of-range values are rejected, never clamped.
func ValidateCopiesPerPage(n, limit int) error {
	if limit < 1 || limit > MaxCopiesPerPage {
		limit = MaxCopiesPerPage
	}
	if n < 1 || n > limit {
		return New(ErrCodeInvalidCopies, "copies per page must be between 1 and %d, got %d", limit, n)
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

// ValidatePath validates a local image path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
