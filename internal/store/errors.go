package store

import "errors"

var (
	// ErrNotFound is returned by update operations referencing an id that is
	// not in the collection. Deletes report absence as false instead.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference is returned when a create or update would point a
	// child entity at a parent id that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that already has an
	// account.
	ErrEmailTaken = errors.New("email already in use")
)
