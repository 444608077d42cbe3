package controllers

import (
	"net/http"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/services"

	"github.com/gin-gonic/gin"
)

// RecommendCalories returns AI-backed calorie/macro targets for the
// submitted profile. A response failing schema or macro-consistency
// validation is rejected whole; nothing is applied to the user's goals
// here.
func RecommendCalories(c *gin.Context) {
	var req services.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := services.NewAIService().RecommendCalories(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GenerateMealPlan builds one day of meals from the caller's own foods
// and custom meals, returning ready-to-apply slot contents. The caller
// applies them through the normal day update so autosave semantics hold.
func GenerateMealPlan(c *gin.Context) {
	userID := middlewares.UserID(c)

	var req struct {
		Goals models.Goals `json:"goals" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foods, err := services.ListFoods(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	meals, err := services.ListCustomMeals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plan, err := services.NewAIService().GenerateMealPlan(req.Goals, foods, meals)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": plan})
}
