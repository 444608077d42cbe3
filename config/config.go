package config

import (
	"fmt"
	"os"

	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.Log.Warn("no .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		utils.Log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.CustomMeal{},
		&models.CustomMealItem{},
		&models.DailyEntry{},
		&models.PlanItem{},
		&models.UserGoals{},
		&models.WeightEntry{},
		&models.ClientLink{},
		&models.ChatMessage{},
		&models.Subscription{},
		&models.WebhookEvent{},
		&models.Notification{},
	)
	if err != nil {
		utils.Log.Fatalf("AutoMigrate failed: %v", err)
	}
}
