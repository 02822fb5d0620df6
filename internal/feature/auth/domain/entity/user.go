// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It carries the authentication credentials plus the failed-login
// bookkeeping used by the account lockout policy.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Username is the unique login name. It is immutable after registration.
	Username string `gorm:"uniqueIndex;size:32;not null" json:"username"`

	// Email is an optional delivery address for password reset codes.
	Email string `gorm:"size:255" json:"email,omitempty"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null" json:"-"`

	// FailedLoginAttempts counts consecutive wrong-password attempts.
	// It resets to zero on any successful login.
	FailedLoginAttempts int `gorm:"not null;default:0" json:"-"`

	// LockedUntil is set when the account is temporarily locked.
	// A nil or past value means the account is not locked.
	LockedUntil *time.Time `json:"-"`

	// LastLogin records the time of the most recent successful login.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"-"`
}

// IsLockedAt reports whether the account is locked at the given instant.
func (u *User) IsLockedAt(t time.Time) bool {
	return u.LockedUntil != nil && t.Before(*u.LockedUntil)
}
