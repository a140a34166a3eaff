// Package entity defines the domain entities for the market feature.
package entity

import "time"

// Company listing statuses. A company registered by a regular user starts as
// pending and only becomes tradable once an admin approves it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DefaultVolatility is the market volatility (in percent) applied when a
// company has none configured.
const DefaultVolatility = 2.5

// MaxTickerLength is the maximum length of a ticker symbol.
const MaxTickerLength = 5

// Company represents a listed company on the exchange.
type Company struct {
	// ID is the unique identifier for the company.
	ID uint `gorm:"primaryKey"`

	// Ticker is the short trading symbol, unique across all companies.
	Ticker string `gorm:"uniqueIndex;size:5;not null"`

	// Name is the full company name.
	Name string `gorm:"size:255;not null"`

	// Sector is the business sector shown on listings.
	Sector string `gorm:"size:64"`

	// Description is the free-text company profile.
	Description string `gorm:"type:text"`

	// InitialPrice is the baseline price used for percentage-change
	// displays. It is reset to the current price at every non-lunch
	// market close.
	InitialPrice float64 `gorm:"not null"`

	// CurrentPrice is the authoritative trade price. Always >= 0.01.
	CurrentPrice float64 `gorm:"not null"`

	// TotalShares is the number of shares outstanding, fixed at listing.
	TotalShares int64 `gorm:"not null"`

	// AvailableShares is the number of shares currently purchasable.
	// Invariant: 0 <= AvailableShares <= TotalShares.
	AvailableShares int64 `gorm:"not null"`

	// MarketVolatility is the post-trade noise bound in percent.
	MarketVolatility float64 `gorm:"not null;default:2.5"`

	// Status is one of StatusPending, StatusApproved, StatusRejected.
	Status string `gorm:"size:16;not null;default:pending;index"`

	// CreatedAt is the timestamp when the company was registered.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the company was last updated.
	UpdatedAt time.Time
}

// Volatility returns the company's configured market volatility, falling
// back to DefaultVolatility when unset.
func (c *Company) Volatility() float64 {
	if c.MarketVolatility <= 0 {
		return DefaultVolatility
	}
	return c.MarketVolatility
}

// ChangePercent returns the percentage change of the current price against
// the baseline price. Returns 0 when no baseline exists.
func (c *Company) ChangePercent() float64 {
	if c.InitialPrice == 0 {
		return 0
	}
	return (c.CurrentPrice - c.InitialPrice) / c.InitialPrice * 100
}
