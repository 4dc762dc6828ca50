package live

import (
	"encoding/json"
	"sync"
	"time"
)

// Client is one websocket viewer of an itinerary.
type Client struct {
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Event is broadcast to every open viewer of an itinerary when it changes.
type Event struct {
	Action      string `json:"action"` // "updated", "deleted"
	ItineraryID string `json:"itineraryid"`
	Timestamp   int64  `json:"timestamp"`
}

// Hub fans itinerary change events out to connected viewers, one room per
// itinerary id.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and closes every client send channel.
func (h *Hub) Stop() {
	close(h.done)
}

// Notify broadcasts a change event to every viewer of the itinerary.
func (h *Hub) Notify(itineraryID, action string) {
	event := Event{
		Action:      action,
		ItineraryID: itineraryID,
		Timestamp:   time.Now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Room: itineraryID, Data: data}:
	case <-h.done:
	}
}
