package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or email matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned when an id is not in the store's id format.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicate is returned when a unique field such as a user email is already stored.
	ErrDuplicate = errors.New("duplicate record")
)
