package apierror

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a 404 from the remote API. Single-entity read paths
// produce it internally and translate it to a nil entity before it reaches
// callers: absence is an expected outcome, not a failure.
var ErrNotFound = errors.New("entity not found")

// RemoteError is any non-2xx response other than the documented 404
// translations. It carries the original status code for caller inspection.
type RemoteError struct {
	StatusCode int
	Resource   string
	Operation  string
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s.%s: remote returned status %d: %s", e.Resource, e.Operation, e.StatusCode, e.Message)
}

// DecodeError is a 2xx response whose body could not be parsed. A success
// status with a garbage body is a caller-visible error, never an empty entity.
type DecodeError struct {
	Resource  string
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s.%s: failed to decode response: %v", e.Resource, e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is raised by domain DTOs before any network call is
// attempted. It indicates a local input error, not a remote failure.
type ValidationError struct {
	Resource string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %v", e.Resource, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidation wraps a validation failure for the given resource.
func NewValidation(resource string, err error) *ValidationError {
	return &ValidationError{Resource: resource, Err: err}
}

// IsRemote extracts a RemoteError from err if one is present.
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsValidation reports whether err originated from DTO validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
