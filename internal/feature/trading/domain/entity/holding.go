// Package entity defines the domain entities for the trading feature.
package entity

import "time"

// Holding represents a user's position in a single company.
// A holding exists only while Shares > 0; selling the last share deletes it.
type Holding struct {
	// ID is the unique identifier for the holding.
	ID uint `gorm:"primaryKey"`

	// UserID identifies the owning user.
	UserID uint `gorm:"not null;uniqueIndex:holding_user_company,priority:1"`

	// CompanyID identifies the held company.
	CompanyID uint `gorm:"not null;uniqueIndex:holding_user_company,priority:2"`

	// Ticker is a denormalized copy of the company ticker.
	Ticker string `gorm:"size:5;not null"`

	// Shares is the number of shares held. Always > 0 while the row exists.
	Shares int64 `gorm:"not null"`

	// AveragePrice is the cost basis per share. Unchanged by sells.
	AveragePrice float64 `gorm:"not null"`

	// TotalInvested is Shares * AveragePrice, maintained incrementally.
	TotalInvested float64 `gorm:"not null"`

	// CreatedAt is the timestamp of the first buy.
	CreatedAt time.Time

	// UpdatedAt is the timestamp of the last position change.
	UpdatedAt time.Time
}
