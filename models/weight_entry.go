package models

import "gorm.io/gorm"

// WeightEntry records a body-weight measurement, one per week keyed by
// the Monday of that week.
type WeightEntry struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex:idx_weight_user_week;not null"`
	WeekKey  string `gorm:"uniqueIndex:idx_weight_user_week;size:10;not null"` // Monday, YYYY-MM-DD
	WeightKg float64
}
