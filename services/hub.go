package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub pushes cache-invalidation notices to connected dashboards so they can
// refetch a report after a CRUD mutation touches its underlying data. This is
// notification-only; no report data travels over the socket.
type Hub struct {
	clients    map[*DashboardClient]bool
	broadcast  chan []byte
	register   chan *DashboardClient
	unregister chan *DashboardClient
	mutex      sync.RWMutex
}

type DashboardClient struct {
	hub    *Hub
	id     string
	socket *websocket.Conn
	send   chan []byte
}

type HubMessage struct {
	Type   string `json:"type"`
	Report string `json:"report,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*DashboardClient]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *DashboardClient),
		unregister: make(chan *DashboardClient),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Dashboard client registered: %s - Total clients: %d", client.id, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Dashboard client unregistered: %s - Total clients: %d", client.id, len(h.clients))
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// NotifyInvalidation tells every connected dashboard that a report prefix is
// stale and should be refetched.
func (h *Hub) NotifyInvalidation(report string) {
	message := HubMessage{Type: "report_invalidated", Report: report}
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling hub message: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// No one listening and nothing buffered; invalidation is best-effort.
	}
}

func (h *Hub) RegisterClient(conn *websocket.Conn, id string) {
	client := &DashboardClient{
		hub:    h,
		id:     id,
		socket: conn,
		send:   make(chan []byte, 16),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *DashboardClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.socket.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *DashboardClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()
	// Dashboards only listen; drain until the peer goes away.
	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}
