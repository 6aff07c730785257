// Package apperr defines the error taxonomy shared by services, handlers
// and the worker. Every rejected operation carries one of the sentinel
// kinds below plus a client-facing message.
package apperr

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrStorageFailure = errors.New("storage failure")
)

// Error pairs a taxonomy kind with the message shown to the caller.
// errors.Is against the sentinel kinds works through Unwrap.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// E builds a client-facing error of the given kind.
func E(kind error, message string) error {
	return &Error{kind: kind, message: message}
}
