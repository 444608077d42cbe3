package services

import (
	"time"

	"github.com/Tobix2/Calorika-sub000/models"

	"gorm.io/gorm"
)

type notifyDeps struct {
	db  *gorm.DB
	hub *ChatHub
}

var _notify notifyDeps

func InitNotifier(db *gorm.DB, hub *ChatHub) {
	_notify = notifyDeps{db: db, hub: hub}
}

// Notify records a user-visible notification and pushes it to any open
// connections. Safe to call anywhere, including autosave timers.
func Notify(userID uint, kind, message string) {
	if _notify.db == nil {
		return // not initialized
	}
	n := &models.Notification{UserID: userID, Kind: kind, Message: message, CreatedAt: time.Now()}
	_ = _notify.db.Create(n).Error

	if _notify.hub != nil {
		_notify.hub.SendToUser(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
}

// ListNotifications returns a user's recent notifications, newest first.
func ListNotifications(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []models.Notification
	err := _notify.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
