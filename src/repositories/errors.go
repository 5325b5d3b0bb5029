package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when a username unique constraint is hit.
	ErrDuplicateUsername = errors.New("username already exists")
)
