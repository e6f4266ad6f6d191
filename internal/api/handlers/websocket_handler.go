package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/reyhanturkkal/Task-Management/internal/auth"
	ws "github.com/reyhanturkkal/Task-Management/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades HTTP connections to the live task feed.
type WebSocketHandler struct {
	hub      *ws.Hub
	resolver *auth.Resolver
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, resolver *auth.Resolver) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, resolver: resolver}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// wsToken accepts the auth cookie first (browser websockets carry cookies,
// not headers), then a ?token= query parameter for programmatic clients.
func wsToken(r *http.Request) string {
	if token := auth.FromCookie(r); token != "" {
		return token
	}
	return r.URL.Query().Get("token")
}

// Serve authenticates the request and, on success, upgrades it. The client
// is subscribed to its own user's task updates and nothing else.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	user, err := h.resolver.ResolveRequest(r, wsToken)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, user.ID)
	h.hub.Register <- client

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		// The feed is one-way; inbound frames are drained and dropped.
		client.ReadPump(nil)
	}()

	// Cleanup on disconnect.
	go func() {
		wg.Wait()
		h.hub.Unregister <- client
	}()
}
