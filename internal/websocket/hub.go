package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and routes task updates to the
// connections belonging to the affected user.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast (system notices).
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Per-user notifications, routed on the hub loop so the subscription
	// map is only ever touched from one goroutine.
	notify chan userMessage

	// A map of user IDs to the set of their open connections.
	subscriptions map[string]map[*Client]bool
}

type userMessage struct {
	userID  string
	payload []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		notify:        make(chan userMessage, 64),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addSubscription(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case msg := <-h.notify:
			h.deliverToUser(msg.userID, msg.payload)
		}
	}
}

// NotifyUser sends a message to every open connection of a single user.
// Other users' connections never see it. Nil messages are dropped. The
// notification is best-effort; if the hub's queue is full it is discarded
// rather than blocking the caller's request.
func (h *Hub) NotifyUser(userID string, message []byte) {
	if message == nil {
		return
	}
	select {
	case h.notify <- userMessage{userID: userID, payload: message}:
	default:
	}
}

func (h *Hub) deliverToUser(userID string, message []byte) {
	if subs, ok := h.subscriptions[userID]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(h.subscriptions[userID], client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client) {
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
