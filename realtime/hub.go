package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"lms/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// client wraps one socket connection; writes are serialized per connection
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub is the live connection registry. Each user gets a room holding all
// of their open sockets; delivery is best-effort and never blocks the
// request that triggered it.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint]map[*client]bool)}
}

func (h *Hub) add(userID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*client]bool)
	}
	h.rooms[userID][c] = true
}

func (h *Hub) remove(userID uint, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[userID], c)
	if len(h.rooms[userID]) == 0 {
		delete(h.rooms, userID)
	}
}

// Push delivers an event to every open socket in a user's room.
// Failed writes are logged and the connection dropped, never surfaced.
func (h *Hub) Push(userID uint, event string, payload interface{}) {
	message, err := json.Marshal(fiber.Map{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		log.Printf("Error marshalling push event %s: %v", event, err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[userID]))
	for c := range h.rooms[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(message); err != nil {
			log.Printf("Error pushing %s to user %d: %v", event, userID, err)
			h.remove(userID, c)
			c.conn.Close()
		}
	}
}

// Upgrade gates the websocket handshake. The bearer token comes from the
// Authorization header or, for browser clients, a `token` query param.
func (h *Hub) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > len("Bearer ") {
			tokenString = authHeader[len("Bearer "):]
		}
	}

	claims, err := middleware.ParseToken(tokenString)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	c.Locals("userId", uint(claims["userId"].(float64)))
	return c.Next()
}

// Handler keeps the socket open in the user's room until the peer closes it
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("userId").(uint)
		if !ok {
			conn.Close()
			return
		}

		cl := &client{conn: conn}
		h.add(userID, cl)
		defer func() {
			h.remove(userID, cl)
			conn.Close()
		}()

		// Drain incoming frames; the channel is push-only
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
