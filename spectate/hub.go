// Package spectate streams a running round to websocket spectators.
package spectate

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

type client struct {
	conn      *websocket.Conn
	sendQueue chan []byte
	id        string
}

// Hub is an http.Handler upgrading requests to websockets and
// broadcasting binary frames to every connected spectator.
type Hub struct {
	Upgrader  websocket.Upgrader
	QueueSize int // Per client, frames are dropped when full.

	mu      sync.Mutex
	clients map[string]*client
	last    []byte // Last broadcast frame, sent first to new clients.
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		Upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		QueueSize: 64,
		clients:   map[string]*client{},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error %s when upgrading spectator connection", err)
		return
	}

	c := &client{
		conn:      conn,
		sendQueue: make(chan []byte, max(h.QueueSize, 1)),
		id:        uuid.NewString(),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c.id] = c
	if h.last != nil {
		c.sendQueue <- h.last
	}
	h.mu.Unlock()
	log.Printf("Spectator %s connected from %s", c.id, conn.RemoteAddr())

	go h.writeLoop(c)

	// Spectators have nothing to say, read only to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c.id)
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.sendQueue {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			log.Printf("Spectator %s write error: %s", c.id, err)
			h.remove(c.id)
			return
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
		close(c.sendQueue)
	}
	h.mu.Unlock()

	if ok {
		_ = c.conn.Close()
		log.Printf("Spectator %s disconnected", id)
	}
}

// Broadcast queues msg for every spectator. Never blocks.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = msg
	for _, c := range h.clients {
		select {
		case c.sendQueue <- msg:
		default:
			log.Printf("Dropping frame, send queue full for spectator %s", c.id)
		}
	}
}

// Len returns the number of connected spectators.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = map[string]*client{}
	h.closed = true
	for _, c := range clients {
		close(c.sendQueue)
	}
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
}
