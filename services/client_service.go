package services

import (
	"errors"
	"fmt"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"

	"gorm.io/gorm"
)

type ClientSummary struct {
	LinkID    uint   `json:"link_id"`
	ClientID  uint   `json:"client_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"`
}

// InviteClient creates a pending link from a professional to the user
// with the given email, subject to the professional's slot capacity.
func InviteClient(professionalID uint, clientEmail string) (*models.ClientLink, error) {
	var pro models.User
	if err := config.DB.First(&pro, professionalID).Error; err != nil {
		return nil, err
	}
	if pro.AccountType != models.AccountTypeProfessional {
		return nil, fmt.Errorf("only professional accounts can invite clients")
	}

	var client models.User
	if err := config.DB.Where("email = ? AND disabled = ?", clientEmail, false).
		First(&client).Error; err != nil {
		return nil, fmt.Errorf("no account with that email")
	}
	if client.ID == professionalID {
		return nil, fmt.Errorf("cannot invite yourself")
	}

	capacity, err := SlotCapacity(professionalID)
	if err != nil {
		return nil, err
	}
	var used int64
	if err := config.DB.Model(&models.ClientLink{}).
		Where("professional_id = ?", professionalID).
		Count(&used).Error; err != nil {
		return nil, err
	}
	if int(used) >= capacity {
		return nil, fmt.Errorf("all %d client slots are in use; purchase more to invite", capacity)
	}

	link := models.ClientLink{
		ProfessionalID: professionalID,
		ClientID:       client.ID,
		Status:         models.ClientLinkPending,
	}
	if err := config.DB.Create(&link).Error; err != nil {
		return nil, fmt.Errorf("invite already exists or could not be created: %w", err)
	}

	Notify(client.ID, "info",
		fmt.Sprintf("%s %s invited you to share your nutrition plan.", pro.FirstName, pro.LastName))
	return &link, nil
}

// AcceptInvite flips a pending link to active. Only the invited client
// may accept.
func AcceptInvite(clientID, linkID uint) error {
	var link models.ClientLink
	if err := config.DB.
		Where("id = ? AND client_id = ?", linkID, clientID).
		First(&link).Error; err != nil {
		return fmt.Errorf("invite not found")
	}
	if link.Status == models.ClientLinkActive {
		return nil
	}
	link.Status = models.ClientLinkActive
	if err := config.DB.Save(&link).Error; err != nil {
		return err
	}
	Notify(link.ProfessionalID, "info", "A client accepted your invitation.")
	return nil
}

func ListClients(professionalID uint) ([]ClientSummary, error) {
	var rows []ClientSummary
	err := config.DB.
		Table("client_links").
		Select("client_links.id AS link_id, users.id AS client_id, users.email, users.first_name, users.last_name, client_links.status").
		Joins("JOIN users ON users.id = client_links.client_id").
		Where("client_links.professional_id = ? AND client_links.deleted_at IS NULL", professionalID).
		Scan(&rows).Error
	return rows, err
}

// RemoveClient deletes a link from either side.
func RemoveClient(requesterID, linkID uint) error {
	var link models.ClientLink
	if err := config.DB.
		Where("id = ? AND (professional_id = ? OR client_id = ?)", linkID, requesterID, requesterID).
		First(&link).Error; err != nil {
		return fmt.Errorf("client link not found")
	}
	return config.DB.Delete(&link).Error
}

// CanViewPlan reports whether viewerID may read ownerID's plan: always
// for the owner, and for a professional with an active link to the
// owner. The association never grants writes.
func CanViewPlan(viewerID, ownerID uint) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	var link models.ClientLink
	err := config.DB.
		Where("professional_id = ? AND client_id = ? AND status = ?",
			viewerID, ownerID, models.ClientLinkActive).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AreLinked reports whether the two users share an active link in either
// direction, the precondition for chat.
func AreLinked(a, b uint) (bool, error) {
	var link models.ClientLink
	err := config.DB.
		Where("status = ? AND ((professional_id = ? AND client_id = ?) OR (professional_id = ? AND client_id = ?))",
			models.ClientLinkActive, a, b, b, a).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
