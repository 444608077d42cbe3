package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/services"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/gin-gonic/gin"
)

// CreateCheckoutSession opens a gateway checkout for additional client
// slots and returns the redirect URL.
func CreateCheckoutSession(c *gin.Context) {
	var req struct {
		Slots int `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := services.NewBillingService().CreateCheckoutSession(middlewares.UserID(c), req.Slots)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// PaymentWebhook receives gateway events. Unsigned or tampered payloads
// are rejected; everything else is acknowledged once applied (or
// recognized as a redelivery).
func PaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	signature := c.GetHeader("X-Gateway-Signature")
	if err := services.NewBillingService().HandleWebhook(payload, signature); err != nil {
		if errors.Is(err, services.ErrBadSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad signature"})
			return
		}
		utils.Log.Errorf("webhook processing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}
	c.Status(http.StatusOK)
}
