package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the API's taxonomy. Handlers map each kind to
// exactly one HTTP status so every endpoint fails the same way.
type Kind int

const (
	// Validation covers missing or malformed fields and out-of-range values.
	Validation Kind = iota
	// Unauthorized covers missing, invalid, or expired tokens.
	Unauthorized
	// Forbidden covers valid tokens whose role or relation is not permitted.
	Forbidden
	// NotFound covers referenced ids that do not resolve.
	NotFound
	// Conflict covers uniqueness violations (duplicate username/email,
	// duplicate enrollment, duplicate feedback).
	Conflict
	// Internal covers storage and connectivity failures.
	Internal
)

// Error is an error with a taxonomy kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a tagged error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap tags an underlying error while keeping it available for errors.Is/As.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf extracts the caller-facing message from err. Untagged errors map
// to a generic message so storage details never leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "server error"
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
