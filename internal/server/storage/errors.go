package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRegretNotFound indicates that regret was not found in storage
	ErrRegretNotFound = errors.New("regret not found")

	// ErrInvalidRegretID indicates that the identifier is not well-formed,
	// as opposed to well-formed but absent
	ErrInvalidRegretID = errors.New("invalid regret id")
)
