package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mahaj/chat-relay/pkg/auth"
	"github.com/mahaj/chat-relay/pkg/model"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Client is one authenticated websocket connection. Identity is bound at
// the handshake and never changes for the connection's lifetime.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound frames.
	send chan []byte

	UserID   int64
	Username string

	mu     sync.Mutex
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, userID int64, username string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		UserID:   userID,
		Username: username,
	}
}

// deliver queues an event frame for the client. Delivery is best-effort:
// a full buffer or an already-closed connection drops the frame.
func (c *Client) deliver(event string, data interface{}) bool {
	frame, err := json.Marshal(model.OutboundEvent{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return false
	}
	return c.trySend(frame)
}

func (c *Client) trySend(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) sendError(message string) {
	c.deliver(model.EventError, model.ErrorPayload{Message: message})
}

// shutdown closes the send channel exactly once, after which deliver
// becomes a no-op. Called only from the disconnect path.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump reads inbound event frames and dispatches them one at a time,
// so a connection's events are handled strictly in arrival order. The
// deferred disconnect runs exactly once per connection whatever ended
// the read loop.
func (c *Client) readPump() {
	defer func() {
		c.hub.disconnect(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Read error for user %d: %v", c.UserID, err)
			}
			break
		}
		c.hub.dispatch(c, frame)
	}
}

// writePump writes queued frames to the websocket connection, one frame
// per message, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// serveWs authenticates and upgrades a websocket request. Both gates
// reject the connection before anything is registered.
func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	// Extract credential from Auth header
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		// Try query param as fallback (standard for some WS clients)
		tokenString = r.URL.Query().Get("token")
	}

	if tokenString == "" {
		log.Println("Unauthorized: No token provided")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Remove "Bearer " prefix if present
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		log.Printf("Unauthorized: Invalid token: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := newClient(hub, conn, claims.UserID, claims.Username)
	hub.connect(client)

	go client.writePump()
	go client.readPump()
}
