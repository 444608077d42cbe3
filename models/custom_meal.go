package models

import "gorm.io/gorm"

// CustomMeal is a named, user-defined composite. It is either composed
// from ingredient rows (Items non-empty, totals derived from them) or
// entered manually (no items, totals and serving size supplied as-is).
// Exactly one of the two forms holds at any time.
type CustomMeal struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"not null"`

	Manual bool // true when totals were typed in, not derived

	// Totals per one serving of ServingSize ServingUnit. For an
	// ingredient-composed meal these are recomputed from Items on every
	// save and ServingSize covers the whole composition.
	Calories    float64
	Protein     float64
	Carbs       float64
	Fats        float64
	ServingSize float64
	ServingUnit string `gorm:"size:16"`

	Items []CustomMealItem `gorm:"foreignKey:MealID"`
}

// CustomMealItem is one ingredient of an ingredient-composed CustomMeal,
// a snapshot of the food plus the quantity used.
type CustomMealItem struct {
	gorm.Model
	MealID uint `gorm:"index;not null"`

	FoodID uint // source FoodItem; informational, snapshot below is authoritative
	Label  string

	Calories    float64
	Protein     float64
	Carbs       float64
	Fats        float64
	ServingSize float64
	ServingUnit string `gorm:"size:16"`

	Quantity float64
}

// Consumed returns the nutrition this ingredient contributes to the meal.
func (i CustomMealItem) Consumed() Nutrition {
	if i.ServingSize <= 0 {
		return Nutrition{}
	}
	facts := Nutrition{Calories: i.Calories, Protein: i.Protein, Carbs: i.Carbs, Fats: i.Fats}
	return facts.Scale(i.Quantity / i.ServingSize)
}

// Facts returns the per-serving nutrition of the meal.
func (m CustomMeal) Facts() Nutrition {
	return Nutrition{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fats: m.Fats}
}
