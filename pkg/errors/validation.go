package errors

import (
	"strings"
	"unicode"
)

// ValidateTerm validates a raw term before it reaches the sentiment cascade
// or the persistent store.
//
// The validation rules are intentionally conservative:
//   - No empty terms
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Normalization (lowercasing, trimming) is done separately by the sentiment
// package; this only rejects input that should never be stored or scored.
func ValidateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return New(ErrCodeInvalidTerm, "term cannot be empty")
	}

	if len(term) > 256 {
		return New(ErrCodeInvalidTerm, "term too long (max 256 characters)")
	}

	for _, r := range term {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTerm, "term contains invalid control characters")
		}
	}

	return nil
}

// ValidateYear validates a corpus year. The corpus holds annual outlook
// documents, so anything outside a sane publication window is rejected
// rather than silently queried.
func ValidateYear(year int) error {
	if year < 1990 || year > 2100 {
		return New(ErrCodeInvalidYear, "year out of range: %d", year)
	}
	return nil
}

// ValidateFormat validates an artifact output format.
func ValidateFormat(format string) error {
	switch format {
	case "svg", "json":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format: %q (expected svg or json)", format)
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
