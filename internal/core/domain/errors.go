package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidRequest = errors.New("invalid request")

// RequestValidationError describes why an inbound body was rejected.
type RequestValidationError struct {
	Field  string
	Reason string
}

func (e *RequestValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid request: %s", e.Reason)
	}
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

func (e *RequestValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// BackendError wraps a transport failure talking to the inference backend.
type BackendError struct {
	Err       error
	TargetURL string
	Timeout   bool
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend request to %s failed: %v", e.TargetURL, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
