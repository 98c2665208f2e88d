// Package domainerrors carries the error taxonomy shared by services and the
// HTTP boundary. Services return *Error values tagged with a Code; transport
// translates the Code into a status and a machine-readable error string.
//
// Stores do not use this package. They return (optionally wrapped) sentinel
// errors from pkg/platform/sentinel and the service layer decides what they mean.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is the machine-readable error identifier surfaced to clients.
type Code string

const (
	// CodeInvalidRequest covers unknown or expired interaction sessions. The
	// user has to restart the authorization flow; resubmitting will not help.
	CodeInvalidRequest Code = "invalid_request"
	// CodeNotAuthenticated means no active user session at decision time.
	CodeNotAuthenticated Code = "not_authenticated"
	// CodeServerError is an internal inconsistency (missing or malformed
	// redirect, engine failure). Never a user-facing authorization outcome.
	CodeServerError Code = "server_error"

	CodeBadRequest   Code = "bad_request"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeTimeout      Code = "timeout"
	CodeInvalidInput Code = "invalid_input"
	// CodeInvariantViolation is raised by domain constructors.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap tags err with a code while keeping it reachable through errors.Is/As.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// As extracts the outermost *Error from err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether the outermost coded error in err's chain has code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the code of err, or CodeServerError for uncoded errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeServerError
}
