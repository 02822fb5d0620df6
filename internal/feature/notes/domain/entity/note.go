// Package entity defines the domain entities for the notes feature.
package entity

import "time"

// Note is one markdown document owned by a user. Content is opaque
// markdown text; parsing and sanitizing happen client side.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
