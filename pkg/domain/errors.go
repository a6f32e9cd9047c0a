package domain

import (
	"errors"
	"fmt"
)

// ErrCorruptHistory marks a history record that exists but cannot be
// decoded. Callers degrade to an empty history instead of failing the turn.
var ErrCorruptHistory = errors.New("corrupt history record")

// ValidationError is a caller-correctable input error, surfaced as 400.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UpstreamError is a non-success response from the completion API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion API returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is a network-level failure reaching the completion API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion API unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
