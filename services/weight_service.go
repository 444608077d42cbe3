package services

import (
	"fmt"
	"time"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

// UpsertWeight records the user's body weight for the week containing
// date; a second entry in the same week replaces the first.
func UpsertWeight(userID uint, date time.Time, weightKg float64) (*models.WeightEntry, error) {
	if weightKg <= 0 || weightKg > 400 {
		return nil, fmt.Errorf("weight out of plausible range")
	}

	weekKey := utils.WeekKey(date)
	entry := models.WeightEntry{UserID: userID, WeekKey: weekKey}
	if err := config.DB.
		Where("user_id = ? AND week_key = ?", userID, weekKey).
		FirstOrCreate(&entry).Error; err != nil {
		return nil, err
	}
	entry.WeightKg = weightKg
	if err := config.DB.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func ListWeights(userID uint) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	err := config.DB.
		Where("user_id = ?", userID).
		Order("week_key ASC").
		Find(&entries).Error
	return entries, err
}
