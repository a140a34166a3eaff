// Package entity defines the domain entities for the news feature.
package entity

import "time"

// News impact levels and their price effect.
const (
	ImpactVeryPositive = "very_positive"
	ImpactPositive     = "positive"
	ImpactNeutral      = "neutral"
	ImpactNegative     = "negative"
	ImpactVeryNegative = "very_negative"
)

// ImpactPercent maps an impact level to the fractional price change it
// applies to the affected company (+15%, +7%, 0, -7%, -15%).
var ImpactPercent = map[string]float64{
	ImpactVeryPositive: 0.15,
	ImpactPositive:     0.07,
	ImpactNeutral:      0,
	ImpactNegative:     -0.07,
	ImpactVeryNegative: -0.15,
}

// News is a published market news item tied to a single company.
type News struct {
	ID uint `gorm:"primaryKey"`

	// Title is the headline.
	Title string `gorm:"size:255;not null"`

	// Content is the full story.
	Content string `gorm:"type:text;not null"`

	// CompanyID identifies the affected company.
	CompanyID uint `gorm:"not null;index"`

	// Ticker is a denormalized copy of the company ticker.
	Ticker string `gorm:"size:5;not null"`

	// Impact is one of the Impact* levels.
	Impact string `gorm:"size:16;not null"`

	// ImpactApplied is set once, after the price effect has been written
	// to the company. Never cleared.
	ImpactApplied bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"index"`
}
