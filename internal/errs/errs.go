// Package errs defines the error kinds the data-access layer reports.
//
// Absence of a row is a normal outcome here, not an exception path, so
// callers are expected to branch on kinds with errors.Is/errs.KindOf
// rather than string-matching driver messages.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the categories the rest of the
// application switches on.
type Kind int

const (
	// Other is any error this package did not classify.
	Other Kind = iota

	// NotFound means the requested row does not exist.
	NotFound

	// DuplicateKey means an insert collided with an existing primary key
	// or unique constraint.
	DuplicateKey

	// FileNotFound means a sync input file is missing.
	FileNotFound

	// MalformedRecord means an input document could not be parsed into a
	// typed record (shape or type mismatch).
	MalformedRecord

	// Unavailable means the store could not be reached (pool or
	// connection fault).
	Unavailable

	// Internal is an unexpected fault inside the store or this layer.
	Internal
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case DuplicateKey:
		return "duplicate_key"
	case FileNotFound:
		return "file_not_found"
	case MalformedRecord:
		return "malformed_record"
	case Unavailable:
		return "unavailable"
	case Internal:
		return "internal"
	default:
		return "other"
	}
}

// Error is the concrete error type carrying a Kind, a message and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches two *Error values by Kind, so sentinel-style checks like
// errors.Is(err, errs.E(errs.NotFound, "")) work on kind alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// E builds an *Error with the given kind and message.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error around a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf reports the Kind of err, or Other when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the status the API shell responds
// with. Anything unclassified is treated as an internal fault.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound, FileNotFound:
		return http.StatusNotFound
	case DuplicateKey:
		return http.StatusConflict
	case MalformedRecord:
		return http.StatusBadRequest
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
