package entity

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// MaxThumbnailLength mirrors the thumbnail column width.
const MaxThumbnailLength = 510

// ValidateURL validates the format of a URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a valid host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: "is not a valid URL"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: "must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: "must have a valid host"}
	}

	return nil
}

// RequireText rejects blank values and values longer than max runes.
// A max of zero disables the length check.
func RequireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return MaxLength(field, value, max)
}

// MaxLength rejects values longer than max runes. A max of zero disables the check.
func MaxLength(field, value string, max int) error {
	if max > 0 && utf8.RuneCountInString(value) > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

// OptionalMaxLength applies MaxLength to a nil-able value.
func OptionalMaxLength(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return MaxLength(field, *value, max)
}
