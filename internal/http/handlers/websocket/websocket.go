package websocket

import (
	"log/slog"
	"net/http"

	wsClient "github.com/solpin/solpin-service/internal/websocket"
)

// GalleryFeed handles WebSocket connections for the live gallery feed
// @Summary Subscribe to upload events
// @Description Upgrades to a WebSocket that receives an upload.created event for every registered upload
// @Tags uploads
// @Router /api/uploads/ws [get]
func GalleryFeed(hub *wsClient.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsClient.Upgrade(w, r)
		if err != nil {
			slog.Error("Failed to upgrade WebSocket connection", slog.String("error", err.Error()))
			return
		}

		// Create new client and register with hub
		client := wsClient.NewClient(conn, hub)
		hub.RegisterClient(client)

		// Start client goroutines
		client.Start()
	}
}
