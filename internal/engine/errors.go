package engine

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of a failed Engine operation.
type ErrorKind int

const (
	// KindTransport indicates the Engine was unreachable (connection
	// refused, timeout, DNS failure).
	KindTransport ErrorKind = iota
	// KindApplication indicates the Engine was reachable but returned
	// an error body. Message carries the Engine's detail verbatim.
	KindApplication
	// KindDecode indicates the response payload did not match the
	// expected shape.
	KindDecode
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "Transport Error"
	case KindApplication:
		return "Application Error"
	case KindDecode:
		return "Decode Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error represents a failure of a single Engine operation.
//
// The client surfaces every failure verbatim; it never retries and
// never reinterprets. Classification into critical and non-critical
// calls is the caller's policy, not the gateway's.
type Error struct {
	Kind       ErrorKind // Category of failure
	Message    string    // Human-readable failure detail
	StatusCode int       // HTTP status code (application errors only)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// newTransportError creates a transport-level error
func newTransportError(message string, err error) *Error {
	return &Error{Kind: KindTransport, Message: message, Err: err}
}

// newApplicationError creates an application-level error carrying the
// Engine's detail message and HTTP status
func newApplicationError(statusCode int, detail string) *Error {
	return &Error{Kind: KindApplication, Message: detail, StatusCode: statusCode}
}

// newDecodeError creates a payload decode error
func newDecodeError(message string, err error) *Error {
	return &Error{Kind: KindDecode, Message: message, Err: err}
}

// KindOf returns the kind of an Engine error, or KindTransport for
// errors that did not originate from this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}

// Detail returns the human-readable message for an Engine error,
// falling back to err.Error() for foreign errors.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
