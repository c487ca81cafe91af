// Package apierr maps typed API failures to structured JSON responses.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies an API failure.
type Kind int

const (
	// KindUnexpected is the catch-all for faults without a more specific kind.
	KindUnexpected Kind = iota
	// KindInvalidToken means the bearer credential is missing or malformed.
	KindInvalidToken
	// KindValidationFailed means required request input is missing or invalid.
	KindValidationFailed
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindInvalidToken:
		return "invalid_token"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "unexpected"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindInvalidToken:
		return http.StatusUnauthorized
	case KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Default messages used when an error is built with an empty message.
const (
	DefaultInvalidTokenMessage = "Invalid token"
	DefaultValidationMessage   = "Invalid request"
	DefaultUnexpectedMessage   = "An unexpected error has occurred"
)

// Error is an API failure carrying a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is matching by kind.
var (
	ErrInvalidToken     = &Error{Kind: KindInvalidToken}
	ErrValidationFailed = &Error{Kind: KindValidationFailed}
	ErrUnexpected       = &Error{Kind: KindUnexpected}
)

func newError(kind Kind, msg string) *Error {
	if msg == "" {
		msg = defaultMessage(kind)
	}
	return &Error{Kind: kind, Message: msg}
}

func defaultMessage(k Kind) string {
	switch k {
	case KindInvalidToken:
		return DefaultInvalidTokenMessage
	case KindValidationFailed:
		return DefaultValidationMessage
	default:
		return DefaultUnexpectedMessage
	}
}

// InvalidToken returns an authentication failure.
func InvalidToken(msg string) *Error {
	return newError(KindInvalidToken, msg)
}

// ValidationFailed returns an input validation failure.
func ValidationFailed(msg string) *Error {
	return newError(KindValidationFailed, msg)
}

// Unexpected returns an internal failure.
func Unexpected(msg string) *Error {
	return newError(KindUnexpected, msg)
}

// Response is the JSON body written for every API error.
type Response struct {
	Error string `json:"error"`
}

// From converts any error into an *Error.
// Errors that are not API errors become KindUnexpected with their own message.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return newError(apiErr.Kind, "")
		}
		return apiErr
	}
	if err == nil {
		return Unexpected("")
	}
	return Unexpected(err.Error())
}

// Write maps err to its status code and writes {"error": message}.
func Write(w http.ResponseWriter, err error) {
	apiErr := From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Kind.Status())
	_ = json.NewEncoder(w).Encode(Response{Error: apiErr.Message})
}

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn to http.HandlerFunc, writing any returned error with Write.
func Handler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			Write(w, err)
		}
	}
}
