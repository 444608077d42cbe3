package services

import (
	"errors"
	"fmt"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"

	"gorm.io/gorm"
)

// GetStandingGoals returns the user's standing targets, zeroed when none
// were ever set.
func GetStandingGoals(userID uint) (models.Goals, error) {
	var row models.UserGoals
	err := config.DB.Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Goals{}, nil
		}
		return models.Goals{}, err
	}
	return row.Goals(), nil
}

func UpsertStandingGoals(userID uint, goals models.Goals) error {
	if goals.Calories < 0 || goals.Protein < 0 || goals.Carbs < 0 || goals.Fats < 0 {
		return fmt.Errorf("goal targets must be non-negative")
	}

	var row models.UserGoals
	err := config.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UserGoals{
			UserID:   userID,
			Calories: goals.Calories,
			Protein:  goals.Protein,
			Carbs:    goals.Carbs,
			Fats:     goals.Fats,
		}
		return config.DB.Create(&row).Error
	}
	if err != nil {
		return err
	}

	row.Calories = goals.Calories
	row.Protein = goals.Protein
	row.Carbs = goals.Carbs
	row.Fats = goals.Fats
	return config.DB.Save(&row).Error
}
