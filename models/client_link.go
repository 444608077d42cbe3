package models

import "gorm.io/gorm"

const (
	ClientLinkPending = "pending"
	ClientLinkActive  = "active"
)

// ClientLink connects a professional account to one of its clients. A
// pending link is an invitation the client has not accepted yet; both
// states count against the professional's purchased client slots.
type ClientLink struct {
	gorm.Model
	ProfessionalID uint   `gorm:"uniqueIndex:idx_link_pro_client;not null"`
	ClientID       uint   `gorm:"uniqueIndex:idx_link_pro_client;not null"`
	Status         string `gorm:"size:12;not null;default:pending"`
}
