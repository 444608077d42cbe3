package models

import "gorm.io/gorm"

// UserGoals holds each user's standing calorie/macro targets, used to
// seed today's daily goals the first time a day is viewed with none set.
type UserGoals struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Calories float64 // e.g. 2000 kcal
	Protein  float64 // e.g. 150 g
	Carbs    float64 // e.g. 200 g
	Fats     float64 // e.g. 70 g
}

// Goals converts the row into the plan view type.
func (g UserGoals) Goals() Goals {
	return Goals{Calories: g.Calories, Protein: g.Protein, Carbs: g.Carbs, Fats: g.Fats}
}
