// Package usecase implements the business logic for the trading feature.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited is returned when a user trades again within the
	// 5-second cooldown window.
	ErrRateLimited = errors.New("please wait 5 seconds between trades")

	// ErrInvalidQuantity is returned when the requested share count is
	// zero or negative.
	ErrInvalidQuantity = errors.New("share quantity must be a positive integer")

	// ErrInsufficientFunds is returned on a buy when the user's cash
	// balance does not cover the total cost.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares is returned on a buy when the company has
	// fewer available shares than requested.
	ErrInsufficientShares = errors.New("insufficient shares available")

	// ErrInsufficientPosition is returned on a sell when the user holds
	// fewer shares than requested (or none at all).
	ErrInsufficientPosition = errors.New("insufficient shares to sell")

	// ErrCompanyNotFound is returned when the traded company does not
	// exist or is not approved for trading. Callers may retry after a
	// refresh since the company can have vanished between read and write.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrUserNotFound is returned when the trading user record vanished.
	ErrUserNotFound = errors.New("user not found")

	// ErrHoldingNotFound is returned by stores when no holding exists for
	// a (user, company) pair. The settlement engine maps it to
	// ErrInsufficientPosition on sells.
	ErrHoldingNotFound = errors.New("holding not found")
)

// MarketClosedError is returned when a trade is attempted while the market
// session is closed. It carries the message stored on the market status so
// the caller can show the reason (e.g. a lunch break window).
type MarketClosedError struct {
	Message string
}

// Error implements the error interface.
func (e *MarketClosedError) Error() string {
	if e.Message == "" {
		return "market is currently closed"
	}
	return fmt.Sprintf("market is currently closed: %s", e.Message)
}
