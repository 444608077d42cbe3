package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AccountTypeUser         = "user"
	AccountTypeProfessional = "professional"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`

	FirstName   string
	LastName    string
	AccountType string `gorm:"size:16;default:user"` // "user" | "professional"

	// Profile fields feeding the calorie recommendation request.
	Birthday      time.Time
	Gender        string `gorm:"size:8"` // "male" | "female"
	HeightCm      float64
	WeightKg      float64
	ActivityLevel string `gorm:"size:16"` // see utils.ActivityMultipliers
	Objective     string `gorm:"size:24"` // "loseWeight" | "maintainWeight" | "gainMuscle"

	Disabled   bool
	MFAEnabled bool
	MFACode    string

	ResetToken    string
	ResetTokenExp time.Time
}
