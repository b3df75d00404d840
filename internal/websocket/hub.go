package websocket

import "sync"

// Hub fans registration and status changes out to every connected admin
// dashboard.
type Hub struct {
	clients map[*Client]bool

	// Broadcast delivers a message to all clients.
	Broadcast chan []byte

	// Register adds a new client.
	Register chan *Client

	// Unregister removes a client.
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run processes hub events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify queues a message for broadcast without blocking the caller. A
// saturated hub drops the message; the feed is advisory, the store holds
// the truth.
func (h *Hub) Notify(message []byte) {
	select {
	case h.Broadcast <- message:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
