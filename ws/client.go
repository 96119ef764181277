package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"vlinky_backend/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the API is CORS-open; the token gates access
	},
}

// IncomingMessage is what a client sends to manage its subscriptions.
type IncomingMessage struct {
	Action     string `json:"action"` // "subscribe", "unsubscribe"
	Collection string `json:"collection"`
}

type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan Event

	hub           *Hub
	mu            sync.RWMutex
	subscriptions map[string]bool
}

// SubscribedTo reports whether the client wants events for the collection.
func (c *Client) SubscribedTo(collection string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscriptions[collection]
}

func (c *Client) setSubscription(collection string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.subscriptions[collection] = true
	} else {
		delete(c.subscriptions, collection)
	}
}

// ServeWS upgrades the connection and starts the read/write pumps.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:            uuid.NewString(),
		UserID:        userID,
		Conn:          conn,
		Send:          make(chan Event, 32),
		hub:           hub,
		subscriptions: make(map[string]bool),
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debug("ws bad message", "client_id", c.ID, "error", err)
			continue
		}

		switch msg.Action {
		case "subscribe":
			if validCollection(msg.Collection) {
				c.setSubscription(msg.Collection, true)
			}
		case "unsubscribe":
			c.setSubscription(msg.Collection, false)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func validCollection(name string) bool {
	return name == CollectionCreatorApplications || name == CollectionVideoRequests
}
