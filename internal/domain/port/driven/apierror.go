package driven

import (
	"errors"
	"fmt"
)

// FailureKind classifies a failed backend request. Every error surfaced by
// a backend client implementation carries exactly one kind, so callers can
// branch without inspecting status codes.
type FailureKind string

const (
	// FailureAuth covers missing sessions, rejected refreshes, and 401s
	// that survive the one-shot retry.
	FailureAuth FailureKind = "auth"
	// FailureForbidden maps 403.
	FailureForbidden FailureKind = "forbidden"
	// FailureNotFound maps 404.
	FailureNotFound FailureKind = "not_found"
	// FailureConnection means no HTTP response was received at all
	// (DNS, timeout, refused connection).
	FailureConnection FailureKind = "connection"
	// FailureValidation maps 4xx responses carrying a structured backend
	// detail code such as MANGA_ALREADY_EXISTS.
	FailureValidation FailureKind = "validation"
	// FailureUnknown is every other status.
	FailureUnknown FailureKind = "unknown"
)

// RequestError is the normalized failure of one backend request. Message
// is always safe to show to a user; Detail holds the backend's machine
// code when it sent one.
type RequestError struct {
	Kind       FailureKind
	StatusCode int    // zero when no response was received
	Detail     string // backend detail code, empty when absent
	Message    string
	Err        error // underlying transport error, may be nil
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error chain. Errors that are
// not RequestErrors report FailureUnknown.
func KindOf(err error) FailureKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return FailureUnknown
}

// IsAuth reports whether the error chain contains an auth-kind failure.
func IsAuth(err error) bool { return KindOf(err) == FailureAuth }

// IsConnection reports whether the error chain contains a connection-kind
// failure, i.e. the backend was never reached.
func IsConnection(err error) bool { return KindOf(err) == FailureConnection }
