package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler layer's error mapping open
// for extension without touching the switch in handleError.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a referenced node does not exist
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input or a domain constraint
	// violation (e.g. replying to a non-assistant node, deleting a root)
	ValidationError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrProviderFailure marks a completion call that errored or returned
	// no usable text. The conversation service substitutes fallback content
	// rather than propagating this to the HTTP layer.
	ErrProviderFailure = errors.New("completion provider failure")
)

// Is allows errors.Is() to match typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
