package notify

import (
	"encoding/json"
	"log"
	"sync"

	"clavis/globals"
	"clavis/mq"
	"clavis/rdx"
)

// Hub fans order lifecycle events out to connected admin dashboards so
// they know to re-fetch the overview snapshot.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues data for every connected client.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// stalePayload is what dashboards receive: enough to know the overview
// is stale and which order moved.
type stalePayload struct {
	Action  string `json:"action"` // "overview-stale"
	Event   string `json:"event"`  // created, updated, deleted
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
}

// StartOrderEventWorker subscribes to the order-event channel and
// relays every event to the hub. Runs until the Redis subscription
// fails or the process exits.
func StartOrderEventWorker(hub *Hub) {
	sub := rdx.Conn.Subscribe(globals.Ctx, mq.Channel)
	ch := sub.Channel()

	for msg := range ch {
		var event mq.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Println("order event unmarshal error:", err)
			continue
		}

		out := stalePayload{
			Action:  "overview-stale",
			Event:   event.EventType,
			OrderID: event.OrderID,
			UserID:  event.UserID,
		}
		if data, err := json.Marshal(out); err == nil {
			hub.Broadcast(data)
		}
	}
}
