package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cybergodev/anonymize"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans the audit logger's live event stream out to connected
// /api/audit-stream websocket clients. It never sits in the synchronous
// Anonymize call path; a client that falls behind is dropped, not the
// other way around.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	mutex     sync.Mutex
}

// NewHub returns a Hub with no clients. Call Run in its own goroutine
// before serving Subscribe.
func NewHub() *Hub {
	return &Hub{
		broadcast: make(chan []byte, 256),
		clients:   make(map[*websocket.Conn]bool),
	}
}

// Run drains the broadcast channel until it is closed, fanning each message
// out to every connected client under a 5-second write deadline.
func (h *Hub) Run() {
	for message := range h.broadcast {
		h.mutex.Lock()
		for client := range h.clients {
			_ = client.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mutex.Unlock()
	}
}

// Subscribe upgrades the request to a websocket and registers the
// connection as a broadcast recipient.
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("anonymize: websocket upgrade failed: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()

	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// Broadcast pushes data to every connected client. Safe to call
// concurrently; drops to the floor if no clients are connected.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		// Hub is backed up; drop rather than block the audit event flow.
	}
}

// Close shuts down the hub's broadcast channel, ending Run.
func (h *Hub) Close() {
	close(h.broadcast)
}

// Subscriber returns an anonymize.AuditConfig.Subscriber callback that
// marshals each event to JSON and broadcasts it to connected
// /api/audit-stream clients.
func (h *Hub) Subscriber() func(anonymize.AuditEvent) {
	return func(event anonymize.AuditEvent) {
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		h.Broadcast(data)
	}
}
