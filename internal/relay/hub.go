package relay

import (
	"log"
	"sync"
)

// The set of connected participants; fans every received event out to
// all participants except its sender
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound events from clients
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex
}

// A drawing-related event passing through the relay. The payload is
// forwarded verbatim; the relay never inspects or validates it.
type Message struct {
	Data   []byte
	Sender *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()

			log.Printf("Participant %s connected (total: %d)", client.sessionID, total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Participant %s disconnected (remaining: %d)", client.sessionID, len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client != message.Sender {
					select {
					case client.send <- message.Data:
					default:
						// Recipient can't keep up; drop it rather than block
						close(client.send)
						delete(h.clients, client)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Number of currently connected participants
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
