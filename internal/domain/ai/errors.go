package ai

import "errors"

var (
	// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
	ErrQuotaExceeded = errors.New("ai quota exceeded")
	// ErrEmptyResponse is returned when the provider answers without content.
	ErrEmptyResponse = errors.New("ai returned no content")
	// ErrInvalidOutput marks content that does not fit the analysis schema.
	ErrInvalidOutput = errors.New("ai output does not match schema")
)
