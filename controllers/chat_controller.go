package controllers

import (
	"net/http"

	"github.com/Tobix2/Calorika-sub000/middlewares"
	"github.com/Tobix2/Calorika-sub000/services"
	"github.com/Tobix2/Calorika-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers send the app origin; the JWT on the upgrade request is
	// the actual gate.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsInbound struct {
	RecipientID uint   `json:"recipient_id"`
	Body        string `json:"body"`
}

// ChatSocket upgrades to a websocket that both receives the caller's
// outgoing messages and pushes incoming chat/notification events.
func ChatSocket(hub *services.ChatHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middlewares.UserID(c)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Log.Errorf("websocket upgrade failed: %v", err)
			return
		}

		client := &services.WSClient{UserID: userID, Conn: conn}
		hub.Register(client)
		defer hub.Unregister(client)

		chat := services.NewChatService(hub)
		for {
			var in wsInbound
			if err := conn.ReadJSON(&in); err != nil {
				return // closed or malformed stream
			}
			msg, err := chat.Send(userID, in.RecipientID, in.Body)
			if err != nil {
				_ = client.WriteJSON(gin.H{"kind": "chat.error", "error": err.Error()})
				continue
			}
			_ = client.WriteJSON(gin.H{"kind": "chat.sent", "message": msg})
		}
	}
}

// ChatHistory returns the conversation with the user in the path.
func ChatHistory(hub *services.ChatHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		otherID, ok := idParam(c, "id")
		if !ok {
			return
		}

		msgs, err := services.NewChatService(hub).History(middlewares.UserID(c), otherID, 50)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

// SendChatMessage is the HTTP fallback for clients without an open
// socket.
func SendChatMessage(hub *services.ChatHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wsInbound
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msg, err := services.NewChatService(hub).Send(middlewares.UserID(c), req.RecipientID, req.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}
