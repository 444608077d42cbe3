package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
	mu     sync.Mutex
}

// WriteJSON serializes writes per connection; gorilla connections do not
// allow concurrent writers.
func (c *WSClient) WriteJSON(payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

// ChatHub tracks the open websocket connections per user and delivers
// chat messages and notifications to whichever of a user's devices are
// connected.
type ChatHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewChatHub() *ChatHub {
	return &ChatHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *ChatHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ChatHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// SendToUser delivers payload to every open connection of userID.
// Offline users simply miss the realtime copy; the persisted record is
// what they load on reconnect.
func (h *ChatHub) SendToUser(userID uint, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.WriteJSON(payload)
	}
}
