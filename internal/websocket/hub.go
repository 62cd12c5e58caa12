package websocket

import (
	"log/slog"
	"sync"

	"github.com/solpin/solpin-service/internal/types"
)

// Hub maintains the set of connected gallery clients and fans events out to
// all of them. Gallery connections are anonymous; every client receives every
// event.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex to protect clients map
	mu sync.RWMutex

	// Channel to broadcast events
	broadcast chan *types.Event
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *types.Event),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Info("WebSocket client connected", slog.Int("clients", h.ClientCount()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				slog.Info("WebSocket client disconnected", slog.Int("clients", len(h.clients)))
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.broadcastToAll(event)
		}
	}
}

// RegisterClient registers a new client
func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

// UnregisterClient unregisters a client
func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// Broadcast queues an event for delivery to every connected client.
func (h *Hub) Broadcast(event *types.Event) {
	select {
	case h.broadcast <- event:
	default:
		slog.Warn("Broadcast channel is full, dropping event")
	}
}

func (h *Hub) broadcastToAll(event *types.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		err := client.SendEvent(event)
		if err != nil {
			slog.Error("Failed to send event to client", slog.String("error", err.Error()))
			// Remove the client if sending fails
			go func(c *Client) {
				h.unregister <- c
			}(client)
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
