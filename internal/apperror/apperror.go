// Package apperror defines the error taxonomy shared by every layer of the
// application.
//
// Services return these typed errors; the HTTP layer translates them to
// status codes with errors.Is, without the services ever knowing about HTTP.
package apperror

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a human-readable message alongside the sentinel it wraps.
//
// Fields is only populated for validation errors. It aggregates every
// violated field in one error (per-field message lists), so a request with
// three bad fields reports all three rather than just the first.
type AppError struct {
	Err     error               // sentinel: ErrNotFound, ErrValidation, ...
	Message string              // human-readable error message
	Fields  map[string][]string // optional: per-field validation messages
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound returns an AppError for a missing resource.
// HTTP handlers map this to 404 Not Found.
func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

// Validation returns an AppError for one or more invalid input fields.
// HTTP handlers map this to 400 Bad Request.
func Validation(message string, fields map[string][]string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Fields: fields}
}

// ValidationField returns a Validation error for a single field.
func ValidationField(field, message string) *AppError {
	return Validation(message, map[string][]string{field: {message}})
}

// Conflict returns an AppError for a uniqueness violation.
// HTTP handlers map this to 409 Conflict.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// Unauthorized returns an AppError for failed authentication.
// HTTP handlers map this to 401 Unauthorized.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}
