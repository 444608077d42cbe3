package services

import (
	"fmt"
	"strings"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

type ChatService struct {
	hub *ChatHub
}

func NewChatService(hub *ChatHub) *ChatService {
	return &ChatService{hub: hub}
}

// Send persists a message between two linked users and delivers it to
// the recipient's open connections.
func (s *ChatService) Send(senderID, recipientID uint, body string) (*models.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is empty")
	}

	linked, err := AreLinked(senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, fmt.Errorf("you can only chat with linked accounts")
	}

	msg := &models.ChatMessage{SenderID: senderID, RecipientID: recipientID, Body: body}
	if err := config.DB.Create(msg).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(recipientID, map[string]any{
			"kind":    "chat.message",
			"message": msg,
		})
	}
	return msg, nil
}

// History returns the conversation between two users, oldest first, and
// marks the requester's unread messages as read.
func (s *ChatService) History(userID, otherID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	var msgs []models.ChatMessage
	err := config.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	// reverse into chronological order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	// Read receipts are best effort; a failure here must not hide the
	// conversation, but it must not vanish either.
	err = config.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND recipient_id = ? AND read = ?", otherID, userID, false).
		Update("read", true).Error
	if err != nil {
		utils.Log.WithField("user_id", userID).Errorf("marking chat messages read failed: %v", err)
	}

	return msgs, nil
}
