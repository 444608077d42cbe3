package services

import (
	"fmt"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"

	"gorm.io/gorm"
)

type CustomMealItemInput struct {
	FoodID   uint    `json:"food_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

// CustomMealInput creates either an ingredient-composed meal (Items set)
// or a manual one (Manual true with explicit totals). Exactly one form
// is allowed.
type CustomMealInput struct {
	Name   string                `json:"name" binding:"required"`
	Manual bool                  `json:"manual"`
	Items  []CustomMealItemInput `json:"items"`

	// Manual-only fields.
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
}

// ComputeMealTotals derives a composed meal's totals from its
// ingredients. The meal's serving is the whole composition, so
// ServingSize is the summed ingredient quantities (best effort when
// units differ; the first ingredient's unit wins).
func ComputeMealTotals(items []models.CustomMealItem) (total models.Nutrition, servingSize float64, servingUnit string) {
	for _, it := range items {
		total = total.Add(it.Consumed())
		servingSize += it.Quantity
		if servingUnit == "" {
			servingUnit = it.ServingUnit
		}
	}
	return total, servingSize, servingUnit
}

func CreateCustomMeal(userID uint, in CustomMealInput) (*models.CustomMeal, error) {
	if in.Manual == (len(in.Items) > 0) {
		return nil, fmt.Errorf("a meal is either composed from items or entered manually, not both")
	}

	meal := models.CustomMeal{UserID: userID, Name: in.Name, Manual: in.Manual}

	if in.Manual {
		if in.Calories < 0 || in.Protein < 0 || in.Carbs < 0 || in.Fats < 0 {
			return nil, fmt.Errorf("nutrition values must be non-negative")
		}
		if in.ServingSize <= 0 || in.ServingUnit == "" {
			return nil, fmt.Errorf("manual meals need a serving size and unit")
		}
		meal.Calories = in.Calories
		meal.Protein = in.Protein
		meal.Carbs = in.Carbs
		meal.Fats = in.Fats
		meal.ServingSize = in.ServingSize
		meal.ServingUnit = in.ServingUnit
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		if meal.Manual {
			return nil
		}

		rows := make([]models.CustomMealItem, 0, len(in.Items))
		for _, it := range in.Items {
			var food models.FoodItem
			if err := tx.Where("id = ? AND user_id = ?", it.FoodID, userID).
				First(&food).Error; err != nil {
				return fmt.Errorf("food %d not found", it.FoodID)
			}
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be positive")
			}
			rows = append(rows, models.CustomMealItem{
				MealID:      meal.ID,
				FoodID:      food.ID,
				Label:       food.Name,
				Calories:    food.Calories,
				Protein:     food.Protein,
				Carbs:       food.Carbs,
				Fats:        food.Fats,
				ServingSize: food.ServingSize,
				ServingUnit: food.ServingUnit,
				Quantity:    it.Quantity,
			})
		}
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}

		// Derived totals live on the meal row so plan placement can
		// snapshot them without loading the items.
		total, size, unit := ComputeMealTotals(rows)
		meal.Calories = total.Calories
		meal.Protein = total.Protein
		meal.Carbs = total.Carbs
		meal.Fats = total.Fats
		meal.ServingSize = size
		meal.ServingUnit = unit
		meal.Items = rows
		return tx.Save(&meal).Error
	})
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func ListCustomMeals(userID uint) ([]models.CustomMeal, error) {
	var meals []models.CustomMeal
	err := config.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&meals).Error
	return meals, err
}

func GetCustomMeal(userID, mealID uint) (*models.CustomMeal, error) {
	var meal models.CustomMeal
	err := config.DB.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func DeleteCustomMeal(userID, mealID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		var meal models.CustomMeal
		if err := tx.Where("id = ? AND user_id = ?", mealID, userID).
			First(&meal).Error; err != nil {
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).
			Delete(&models.CustomMealItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}
