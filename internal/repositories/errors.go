package repositories

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a write would break email uniqueness.
	ErrDuplicateEmail = errors.New("duplicate email")
)
