package errors

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID is returned for identifiers that are not valid UUIDs.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrConflict is returned when a write collides with a unique constraint (e.g. test passcode).
	ErrConflict = errors.New("resource already exists")

	// ErrAIUnavailable wraps failures of the upstream language model.
	ErrAIUnavailable = errors.New("ai service unavailable")
)
