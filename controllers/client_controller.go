package controllers

import (
	"net/http"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/services"

	"github.com/gin-gonic/gin"
)

func InviteClient(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := services.InviteClient(middlewares.UserID(c), req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, link)
}

func AcceptInvite(c *gin.Context) {
	linkID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.AcceptInvite(middlewares.UserID(c), linkID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func ListClients(c *gin.Context) {
	clients, err := services.ListClients(middlewares.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func RemoveClient(c *gin.Context) {
	linkID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.RemoveClient(middlewares.UserID(c), linkID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
