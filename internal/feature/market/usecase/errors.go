// Package usecase implements the business logic for the market feature.
package usecase

import "errors"

var (
	// ErrCompanyNotFound is returned when no company matches the lookup.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrTickerAlreadyExists is returned when registering a company with
	// a ticker that is already listed.
	ErrTickerAlreadyExists = errors.New("ticker already exists")

	// ErrInvalidListing is returned when a registration request fails
	// validation (bad ticker, non-positive price or share count).
	ErrInvalidListing = errors.New("invalid company listing")
)
