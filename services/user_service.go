package services

import (
	"errors"
	"time"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

type ProfileInput struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Birthday      string  `json:"birthday"` // sent as YYYY-MM-DD
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height"`
	WeightKg      float64 `json:"weight"`
	ActivityLevel string  `json:"activity_level"`
	Objective     string  `json:"objective"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	birthday := ""
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
		birthday = user.Birthday.Format("2006-01-02")
	}

	return map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
		"account_type":   user.AccountType,
		"birthday":       birthday,
		"age":            age,
		"gender":         user.Gender,
		"height":         user.HeightCm,
		"weight":         user.WeightKg,
		"activity_level": user.ActivityLevel,
		"objective":      user.Objective,
		"mfa_enabled":    user.MFAEnabled,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err == nil {
			user.Birthday = birthday
		}
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}
	if input.ActivityLevel != "" {
		if _, ok := utils.ActivityMultipliers[input.ActivityLevel]; !ok {
			return errors.New("unknown activity level")
		}
		user.ActivityLevel = input.ActivityLevel
	}
	if input.Objective != "" {
		user.Objective = input.Objective
	}

	return config.DB.Save(&user).Error
}
