package controllers

import (
	"net/http"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/services"

	"github.com/gin-gonic/gin"
)

// GetGoals returns the caller's standing calorie/macro targets.
func GetGoals(c *gin.Context) {
	goals, err := services.GetStandingGoals(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goals)
}

func UpdateGoals(c *gin.Context) {
	var req struct {
		Calories float64  `json:"calories" binding:"required"`
		Protein  float64  `json:"protein"`
		Carbs    float64  `json:"carbs"`
		Fats     *float64 `json:"fats"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fats := 0.0
	if req.Fats != nil {
		fats = *req.Fats
	}

	goals := models.Goals{
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     fats,
	}
	if err := services.UpsertStandingGoals(middlewares.UserID(c), goals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
