package entity

import "time"

// PasswordReset is a short-lived numeric code proving control of an
// account without the original password. At most one active (unused,
// unexpired) code exists per user: issuing a new code deletes all prior
// codes for that user.
type PasswordReset struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID references the owning user.
	UserID uint `gorm:"index;not null" json:"user_id"`

	// Code is the 6-digit numeric reset code.
	Code string `gorm:"size:6;not null;index" json:"-"`

	// ExpiresAt is the instant after which the code is unusable.
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	// UsedAt is set when the code is consumed by a password reset.
	// A used code can never be consumed again.
	UsedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for GORM.
func (PasswordReset) TableName() string {
	return "password_resets"
}
