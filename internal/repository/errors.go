package repository

import "errors"

var (
	// ErrNotFound is returned when an id or email resolves to no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a write would violate the
	// system-wide email uniqueness invariant.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrLastAdmin is returned when a delete would remove the final
	// remaining admin profile.
	ErrLastAdmin = errors.New("cannot delete the last admin")
)
