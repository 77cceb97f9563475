package realtime

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// WebSocketHandler streams a user's live topics over a websocket. The
// client implicitly gets its direct-message and notification topics;
// additional group rooms come from repeated "group" query parameters.
type WebSocketHandler struct {
	hub *Hub
}

// NewWebSocketHandler creates a WebSocketHandler
func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// RegisterRoutes registers the websocket route
func (h *WebSocketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.Serve)
}

// Serve upgrades the connection and relays hub events until the client
// disconnects. Every subscription is released on teardown.
func (h *WebSocketHandler) Serve(c echo.Context) error {
	userID, _ := c.Get("firebaseUID").(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	send := make(chan Event, sendBufferSize)
	forward := func(event Event) {
		select {
		case send <- event:
		default:
			// Slow consumer: drop rather than block the publisher. The
			// client still converges via its next fetch.
		}
	}

	topics := []string{
		"user:" + userID + ":messages",
		"user:" + userID + ":notifications",
	}
	for _, groupID := range c.QueryParams()["group"] {
		topics = append(topics, "group:"+groupID+":messages")
	}

	unsubscribes := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubscribes = append(unsubscribes, h.hub.Subscribe(topic, forward))
	}
	defer func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}()

	// Reader goroutine: we ignore client payloads but need the read loop to
	// detect disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("websocket write to %s: %v", userID, err)
				return nil
			}
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}
