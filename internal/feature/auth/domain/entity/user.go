// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User roles. Admins approve companies, publish news and control the
// market session; regular users can only trade.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCashBalance is the Danset balance granted to every new account.
const DefaultCashBalance = 10000.0

// User represents a registered participant of the exchange.
// It carries both authentication credentials and the trading cash balance.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// CashBalance is the amount of Danset available for buying shares.
	// Debited on buys, credited on sells.
	CashBalance float64 `gorm:"not null;default:0"`

	// Role is either RoleUser or RoleAdmin.
	Role string `gorm:"size:16;not null;default:user"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// IsAdmin reports whether the user has administrator privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
