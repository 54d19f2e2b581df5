package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Notification kinds pushed to users
const (
	NotifyConnectionRequested = "connection.requested"
	NotifyConnectionAccepted  = "connection.accepted"
	NotifyConnectionRejected  = "connection.rejected"
	NotifyApplicationReceived = "application.received"
	NotifyApplicationApproved = "application.approved"
	NotifyApplicationRejected = "application.rejected"
	NotifyClubStatus          = "club.status"
	NotifyEventStatus         = "event.status"
)

// Notifier delivers live notifications to a user
type Notifier interface {
	Notify(userID int64, kind string, data interface{})
}

// NopNotifier drops every notification
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(int64, string, interface{}) {}

// Notification is the JSON document written to a user's sockets
type Notification struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`

	userID int64
}

// Hub maintains the set of active clients and routes notifications to the sockets of
// their addressee. Delivery is best-effort: nothing is stored for offline users.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Notifications waiting to be routed
	broadcast chan *Notification

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Guards clients for readers outside Run
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Notification, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run routes registrations and notifications until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case n := <-h.broadcast:
			h.deliver(n)
		}
	}
}

// Notify queues a notification for userID. It never blocks: when the queue is full
// the notification is dropped.
func (h *Hub) Notify(userID int64, kind string, data interface{}) {
	n := &Notification{Type: kind, Data: data, Timestamp: time.Now().UTC(), userID: userID}
	select {
	case h.broadcast <- n:
	default:
		h.logger.Warn().Int64("userID", userID).Str("type", kind).Msg("Notification queue full, dropping notification")
	}
}

func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of open sockets of userID
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.removeLocked(client) {
		h.logger.Info().
			Int64("userID", client.userID).
			Str("addr", client.remoteAddr()).
			Msg("Client unregistered")
	}
}

// removeLocked drops client and closes its send channel. Callers hold mu.
func (h *Hub) removeLocked(client *Client) bool {
	clients, ok := h.clients[client.userID]
	if !ok || !clients[client] {
		return false
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
	return true
}

func (h *Hub) deliver(n *Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Str("type", n.Type).Msg("Failed to marshal notification")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[n.userID]
	if len(clients) == 0 {
		h.logger.Debug().Int64("userID", n.userID).Str("type", n.Type).Msg("User offline, notification dropped")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
