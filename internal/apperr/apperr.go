// Package apperr defines the failure taxonomy shared by every component.
// Callers wrap these sentinels with fmt.Errorf("...: %w", ...) and the API
// layer maps them to HTTP status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrConfiguration indicates a missing credential or endpoint.
	ErrConfiguration = errors.New("configuration error")

	// ErrIntegration indicates an external call failed or returned a
	// failure status.
	ErrIntegration = errors.New("integration error")

	// ErrFormat indicates an external response had an unexpected shape.
	ErrFormat = errors.New("format error")

	// ErrValidation indicates caller input violated a precondition.
	ErrValidation = errors.New("validation error")

	// ErrState indicates an operation that requires prior initialization
	// was called before it happened.
	ErrState = errors.New("state error")

	// ErrUnsupportedFormat indicates a document extension that is not
	// handled.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrTimeout indicates an external call exceeded its deadline.
	ErrTimeout = errors.New("timeout error")

	// ErrNotFound indicates a requested entity does not exist upstream.
	ErrNotFound = errors.New("not found")
)
