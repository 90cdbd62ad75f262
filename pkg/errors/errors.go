package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies remote-call failures so callers can branch on the cause.
type Kind string

const (
	KindNetwork    Kind = "NETWORK"
	KindTimeout    Kind = "TIMEOUT"
	KindServer     Kind = "SERVER"
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION"
	KindInternal   Kind = "INTERNAL"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Kind reports the failure classification encoded in the error code.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindInternal
	}
	switch e.Code {
	case string(KindNetwork), string(KindTimeout), string(KindServer), string(KindNotFound), string(KindValidation):
		return Kind(e.Code)
	default:
		return KindInternal
	}
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNetwork    = New(string(KindNetwork), http.StatusBadGateway, "remote service unreachable")
	ErrTimeout    = New(string(KindTimeout), http.StatusGatewayTimeout, "remote call timed out")
	ErrServer     = New(string(KindServer), http.StatusBadGateway, "remote service returned an error")
	ErrNotFound   = New(string(KindNotFound), http.StatusNotFound, "resource not found")
	ErrValidation = New(string(KindValidation), http.StatusBadRequest, "validation failed")
	ErrInternal   = New(string(KindInternal), http.StatusInternalServerError, "internal server error")
)

// ErrCacheMiss signals an absent cache entry; callers treat it as a miss, not a failure.
var ErrCacheMiss = errors.New("cache miss")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// KindOf extracts the classification from any error chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindInternal
}

// IsNotFound reports whether the error chain carries a NOT_FOUND classification.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsTimeout reports whether the error chain carries a TIMEOUT classification.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}
