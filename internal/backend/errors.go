package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedBackend marks a backend id outside the known set.
	// It is a malformed request, not a runtime failure.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrBackendUnavailable marks a known backend whose prerequisites
	// were missing at startup.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrEmptyText marks a request with nothing to synthesize.
	ErrEmptyText = errors.New("text required")
)

// SynthesisError wraps a backend-specific failure during synthesis.
type SynthesisError struct {
	Backend ID
	Cause   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s synthesis failed: %v", e.Backend, e.Cause)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}
