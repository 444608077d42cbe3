package models

import "time"

type ChatMessage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SenderID    uint   `gorm:"index" json:"sender_id"`
	RecipientID uint   `gorm:"index" json:"recipient_id"`
	Body        string `gorm:"type:text" json:"body"`
	Read        bool   `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
