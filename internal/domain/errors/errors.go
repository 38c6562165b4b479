package errors

import (
	"errors"
)

var (
	// User errors.
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already in use")
	ErrEmailExists    = errors.New("email already in use")
	ErrDuplicateValue = errors.New("duplicate value violates unique constraint")

	// Post errors.
	ErrPostNotFound = errors.New("post not found")

	// Session errors.
	ErrSessionNotFound = errors.New("session not found")
)

// IsNotFound reports whether err is any of the "does not exist" errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPostNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameExists) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrDuplicateValue)
}
