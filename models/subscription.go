package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
)

// Subscription tracks the client slots a professional has purchased
// through the payment gateway. Slots only ever change from verified
// webhook events.
type Subscription struct {
	gorm.Model
	ProfessionalID uint `gorm:"uniqueIndex;not null"`

	Slots     int    // purchased client slots
	Status    string `gorm:"size:12;default:active"`
	GatewayID string `gorm:"size:64"` // gateway-side subscription reference
}

// WebhookEvent records a processed gateway event. The unique event ID
// makes webhook delivery retries no-ops.
type WebhookEvent struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    string `gorm:"uniqueIndex;size:64;not null"`
	Type       string `gorm:"size:32"`
	ReceivedAt time.Time
}
