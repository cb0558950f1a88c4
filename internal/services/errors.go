package services

import "errors"

// Error kinds returned by the services. Use errors.Is against these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a client-facing service error: Message is safe to return to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func notFoundError(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func conflictError(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

func unauthorizedError(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
