package controllers

import (
	"net/http"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/services"

	"github.com/gin-gonic/gin"
)

func CreateCustomMeal(c *gin.Context) {
	var input services.CustomMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := services.CreateCustomMeal(middlewares.UserID(c), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func ListCustomMeals(c *gin.Context) {
	meals, err := services.ListCustomMeals(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func GetCustomMeal(c *gin.Context) {
	mealID, ok := idParam(c, "id")
	if !ok {
		return
	}

	meal, err := services.GetCustomMeal(middlewares.UserID(c), mealID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func DeleteCustomMeal(c *gin.Context) {
	mealID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteCustomMeal(middlewares.UserID(c), mealID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
