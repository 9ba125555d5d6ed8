package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Manager struct {
	clients    map[string]map[*Client]bool // userID -> connections
	broadcast  chan []byte
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type directMessage struct {
	userID  string
	payload []byte
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan []byte),
		direct:     make(chan directMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.userID] == nil {
				m.clients[client.userID] = make(map[*Client]bool)
			}
			m.clients[client.userID][client] = true
			m.mu.Unlock()
			log.Printf("✅ WebSocket client registered for user %s", client.userID)

		case client := <-m.unregister:
			m.mu.Lock()
			if conns, ok := m.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(m.clients, client.userID)
					}
				}
			}
			m.mu.Unlock()
			log.Printf("❌ WebSocket client unregistered for user %s", client.userID)

		case message := <-m.broadcast:
			m.mu.RLock()
			for _, conns := range m.clients {
				for client := range conns {
					select {
					case client.send <- message:
					default:
						close(client.send)
						delete(conns, client)
					}
				}
			}
			m.mu.RUnlock()

		case dm := <-m.direct:
			m.mu.RLock()
			for client := range m.clients[dm.userID] {
				select {
				case client.send <- dm.payload:
				default:
					close(client.send)
					delete(m.clients[dm.userID], client)
				}
			}
			m.mu.RUnlock()
		}
	}
}

func (m *Manager) envelope(eventType string, payload interface{}) []byte {
	data := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	msg, err := json.Marshal(data)
	if err != nil {
		log.Printf("❌ Error marshaling WebSocket message: %v", err)
		return nil
	}
	return msg
}

// NotifyNewMessage pushes a just-sent chat message to the recipient.
func (m *Manager) NotifyNewMessage(recipientID string, message interface{}) {
	if msg := m.envelope("new_message", message); msg != nil {
		m.direct <- directMessage{userID: recipientID, payload: msg}
	}
}

// NotifyMatchesRefreshed tells a user their ranked matches were recomputed.
func (m *Manager) NotifyMatchesRefreshed(userID string, computedAt int64) {
	payload := map[string]interface{}{"computedAt": computedAt}
	if msg := m.envelope("matches_refreshed", payload); msg != nil {
		m.direct <- directMessage{userID: userID, payload: msg}
	}
}

func (m *Manager) GetConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler upgrades the connection for an already-authenticated user. The
// route layer resolves the JWT before calling this.
func Handler(manager *Manager, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  userID,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		manager.register <- client

		welcome := map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"userId": userID,
				"time":   time.Now().Unix(),
			},
		}
		msg, _ := json.Marshal(welcome)
		client.send <- msg

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			continue
		}

		switch data["type"] {
		case "ping":
			if msg := c.manager.envelope("pong", map[string]interface{}{"time": time.Now().Unix()}); msg != nil {
				c.send <- msg
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
