package entity

import "time"

// Trade sides recorded on transactions.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Transaction is the immutable record of one executed trade.
// Rows are append-only: they are never updated or deleted.
type Transaction struct {
	// ID is the unique identifier for the transaction.
	ID uint `gorm:"primaryKey"`

	// Reference is an opaque receipt id handed back to the caller.
	Reference string `gorm:"uniqueIndex;size:36;not null"`

	// UserID identifies the trading user.
	UserID uint `gorm:"not null;index"`

	// CompanyID identifies the traded company.
	CompanyID uint `gorm:"not null;index"`

	// Ticker is a denormalized copy of the company ticker.
	Ticker string `gorm:"size:5;not null"`

	// Type is SideBuy or SideSell.
	Type string `gorm:"size:4;not null"`

	// Shares is the traded quantity. Always > 0.
	Shares int64 `gorm:"not null"`

	// PricePerShare is the execution price, snapshotted before the
	// post-trade price impact is applied.
	PricePerShare float64 `gorm:"not null"`

	// TotalAmount is Shares * PricePerShare.
	TotalAmount float64 `gorm:"not null"`

	// CreatedAt is the execution timestamp.
	CreatedAt time.Time `gorm:"index"`
}
