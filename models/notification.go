package models

import "time"

// Notification is a user-visible message raised by a background failure
// or an account event (failed autosave, client invite, slot purchase).
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Kind      string    `gorm:"size:32" json:"kind"` // "error" | "info"
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
