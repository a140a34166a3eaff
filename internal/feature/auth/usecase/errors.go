// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user
	// with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned during login when the email or
	// password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidGrant is returned when an admin cash grant is not a
	// positive amount.
	ErrInvalidGrant = errors.New("grant amount must be positive")
)
