package models

import "gorm.io/gorm"

// FoodItem is one entry in a user's personal food database. Nutrition
// facts are normalized to one serving of ServingSize ServingUnit.
type FoodItem struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"not null"`

	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64

	ServingSize float64 `gorm:"not null"`
	ServingUnit string  `gorm:"size:16;not null"` // e.g. "g", "ml", "cup"
}

// Facts returns the per-serving nutrition of the food.
func (f FoodItem) Facts() Nutrition {
	return Nutrition{Calories: f.Calories, Protein: f.Protein, Carbs: f.Carbs, Fats: f.Fats}
}
