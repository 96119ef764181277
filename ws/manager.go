package ws

import (
	"sync"

	"vlinky_backend/internal/logger"
)

// Collections clients may subscribe to.
const (
	CollectionCreatorApplications = "creator_applications"
	CollectionVideoRequests       = "video_requests"
)

// Event tells subscribers that a record in a collection changed. Clients
// re-read through the normal REST endpoints; the event carries no row data.
type Event struct {
	Collection string `json:"collection"`
	Action     string `json:"action"` // "created", "updated"
	ID         string `json:"id"`
}

// Hub is the single shared subscription manager. Every list view in the SPA
// subscribes here once per collection instead of opening its own feed.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	events     chan Event
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 256),
	}
}

// Run owns the client set. Call once from a goroutine at startup.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			logger.Debug("ws client registered", "client_id", client.ID, "total", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debug("ws client unregistered", "client_id", client.ID)

		case event := <-h.events:
			h.fanOut(event)
		}
	}
}

// Publish queues a change event. Never blocks the write path: if the hub is
// saturated the event is dropped, which only delays a refetch.
func (h *Hub) Publish(collection, action, id string) {
	select {
	case h.events <- Event{Collection: collection, Action: action, ID: id}:
	default:
		logger.Warn("ws event dropped, hub saturated", "collection", collection)
	}
}

func (h *Hub) fanOut(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.SubscribedTo(event.Collection) {
			continue
		}
		select {
		case client.Send <- event:
		default:
			// Slow consumer; skip rather than stall the hub.
		}
	}
}
