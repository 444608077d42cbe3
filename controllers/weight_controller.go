package controllers

import (
	"net/http"
	"time"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/services"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/gin-gonic/gin"
)

func UpsertWeight(c *gin.Context) {
	var req struct {
		WeightKg float64 `json:"weight" binding:"required"`
		Date     string  `json:"date"` // optional YYYY-MM-DD, defaults to today
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		t, err := utils.ParseDateKey(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date = t
	}

	entry, err := services.UpsertWeight(middlewares.UserID(c), date, req.WeightKg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func ListWeights(c *gin.Context) {
	entries, err := services.ListWeights(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
