package models

import "gorm.io/gorm"

// DailyEntry is the persisted form of one DailyPlan: one row per
// (user, date key) holding the day's goals, with the slot contents in
// PlanItem rows. Writing a day replaces its entire item set, so the
// stored record always mirrors the last full DailyPlan written.
type DailyEntry struct {
	gorm.Model
	UserID  uint   `gorm:"uniqueIndex:idx_entry_user_date;not null"`
	DateKey string `gorm:"uniqueIndex:idx_entry_user_date;size:10;not null"` // YYYY-MM-DD

	CalorieGoal float64
	ProteinGoal float64
	CarbGoal    float64
	FatGoal     float64

	Items []PlanItem `gorm:"foreignKey:EntryID"`
}

// PlanItem is one meal item inside a persisted day, ordered by Position
// within its slot.
type PlanItem struct {
	gorm.Model
	EntryID  uint   `gorm:"index;not null"`
	Slot     string `gorm:"size:16;not null"`
	Position int

	InstanceID string `gorm:"size:36"`
	Label      string

	Calories    float64
	Protein     float64
	Carbs       float64
	Fats        float64
	ServingSize float64
	ServingUnit string `gorm:"size:16"`

	Quantity   float64
	SourceKind string `gorm:"size:8"` // "food" | "meal"
	SourceID   uint
}
