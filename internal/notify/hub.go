// Package notify pushes vacancy status changes (submitted, approved,
// published, expired) to connected employer dashboards over a websocket,
// with a Redis channel bridging multiple API instances.
package notify

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is what gets pushed to the employer's open tabs.
type Event struct {
	Type       string    `json:"type"` // vacancy_status
	VacancyID  uuid.UUID `json:"vacancy_id"`
	EmployerID uuid.UUID `json:"employer_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
}

type Client struct {
	ID         string
	EmployerID uuid.UUID
	Send       chan []byte
}

type Hub struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// SendToEmployer delivers an event to every open connection of one employer
// account. Full send buffers are skipped rather than blocked on.
func (h *Hub) SendToEmployer(employerID uuid.UUID, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error marshaling notify event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.EmployerID == employerID {
			select {
			case client.Send <- payload:
			default:
			}
		}
	}
}

// ClientCount reports how many connections one employer has open.
func (h *Hub) ClientCount(employerID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, client := range h.clients {
		if client.EmployerID == employerID {
			n++
		}
	}
	return n
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("Notify client registered: %s (employer %s)", client.ID, client.EmployerID)

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}
