// Package entity defines the domain entities for the schedule feature.
package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MarketSchedule is the singleton record describing the automatic trading
// session. Times are "HH:MM" strings interpreted in UTC.
type MarketSchedule struct {
	ID uint `gorm:"primaryKey"`

	// OpenTime is when the session opens ("HH:MM" UTC).
	OpenTime string `gorm:"size:5;not null"`

	// CloseTime is when the session closes ("HH:MM" UTC). A close time
	// earlier than the open time means the session spans midnight.
	CloseTime string `gorm:"size:5;not null"`

	// LunchBreakStart and LunchBreakEnd bound the mid-session pause.
	LunchBreakStart string `gorm:"size:5;not null"`
	LunchBreakEnd   string `gorm:"size:5;not null"`

	// AutoScheduleEnabled gates the scheduler; when false the market is
	// only opened and closed manually by admins.
	AutoScheduleEnabled bool `gorm:"not null;default:true"`

	UpdatedAt time.Time
}

// DefaultSchedule returns the schedule used before an admin configures one:
// open 20:00 UTC, close 08:00 UTC, lunch 00:00-01:00 UTC.
func DefaultSchedule() *MarketSchedule {
	return &MarketSchedule{
		OpenTime:            "20:00",
		CloseTime:           "08:00",
		LunchBreakStart:     "00:00",
		LunchBreakEnd:       "01:00",
		AutoScheduleEnabled: true,
	}
}

// MarketStatus is the singleton open/closed flag shown to traders.
// When no row exists every reader treats the market as open.
type MarketStatus struct {
	ID uint `gorm:"primaryKey"`

	// IsOpen reports whether trades are currently accepted.
	IsOpen bool `gorm:"not null;default:true"`

	// Message is the free text shown to traders while the market is closed.
	Message string `gorm:"size:255"`

	UpdatedAt time.Time
}

// ParseMinuteOfDay converts an "HH:MM" string into minutes since midnight.
func ParseMinuteOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// Validate checks that every schedule time parses as HH:MM.
func (s *MarketSchedule) Validate() error {
	for _, t := range []string{s.OpenTime, s.CloseTime, s.LunchBreakStart, s.LunchBreakEnd} {
		if _, err := ParseMinuteOfDay(t); err != nil {
			return err
		}
	}
	return nil
}
