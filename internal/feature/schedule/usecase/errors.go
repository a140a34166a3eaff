// Package usecase implements the business logic for the schedule feature.
package usecase

import "errors"

var (
	// ErrScheduleNotFound is returned when no schedule record exists yet.
	ErrScheduleNotFound = errors.New("market schedule not found")

	// ErrStatusNotFound is returned when no market status record exists.
	// Readers treat this as "market open" (fail-open default).
	ErrStatusNotFound = errors.New("market status not found")
)
