// Package apierror provides the canonical error envelopes for the API.
// All 4xx/5xx responses go through this package so clients always see the
// same shape and internal details (stack traces, SQL errors) never leak.
package apierror

// APIError is the single-message error envelope.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field failures from request validation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
