// Package apperr holds the error kinds services share with the HTTP layer.
// Services wrap these with context; handlers map them to status codes.
package apperr

import "errors"

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller may not act on the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition means a status change is not in the transition table.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrConflict means the write collides with existing state (a taken login
	// name, a campaign code already in use).
	ErrConflict = errors.New("conflict")
)
