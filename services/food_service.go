package services

import (
	"fmt"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"
)

type FoodInput struct {
	Name        string  `json:"name" binding:"required"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ServingSize float64 `json:"serving_size" binding:"required"`
	ServingUnit string  `json:"serving_unit" binding:"required"`
}

func (in FoodInput) validate() error {
	if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
		return fmt.Errorf("nutrition values must be non-negative")
	}
	if in.ServingSize <= 0 {
		return fmt.Errorf("serving size must be positive")
	}
	return nil
}

func CreateFood(userID uint, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	food := models.FoodItem{
		UserID:      userID,
		Name:        in.Name,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fats:        in.Fats,
		ServingSize: in.ServingSize,
		ServingUnit: in.ServingUnit,
	}
	if err := config.DB.Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func ListFoods(userID uint) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := config.DB.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&foods).Error
	return foods, err
}

func UpdateFood(userID, foodID uint, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var food models.FoodItem
	if err := config.DB.
		Where("id = ? AND user_id = ?", foodID, userID).
		First(&food).Error; err != nil {
		return nil, err
	}
	food.Name = in.Name
	food.Calories = in.Calories
	food.Protein = in.Protein
	food.Carbs = in.Carbs
	food.Fats = in.Fats
	food.ServingSize = in.ServingSize
	food.ServingUnit = in.ServingUnit
	if err := config.DB.Save(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// DeleteFood removes a food from the user's database. Plan entries that
// referenced it keep their snapshots.
func DeleteFood(userID, foodID uint) error {
	return config.DB.
		Where("id = ? AND user_id = ?", foodID, userID).
		Delete(&models.FoodItem{}).Error
}
