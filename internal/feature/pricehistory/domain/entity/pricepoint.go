// Package entity defines the domain models for the pricehistory feature.
package entity

import "time"

// PricePoint is one sampled price for a company. Points are appended after
// every settlement and every applied news impact, so the series reflects the
// actual sequence of prices the market traded at.
type PricePoint struct {
	CompanyID uint      // Company the sample belongs to
	Ticker    string    // Denormalized ticker symbol
	Price     float64   // Price after the event that produced the sample
	Time      time.Time // When the sample was recorded
}
