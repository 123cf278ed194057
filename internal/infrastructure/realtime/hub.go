// Package realtime pushes committed notifications to users over websockets.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/api/metrics"
	"github.com/alumnet/alumni-network/internal/core/domain"
	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

// ErrHubClosed is returned by Serve once Close has been called.
var ErrHubClosed = errors.New("realtime: hub closed")

// Message is the envelope written to clients.
type Message struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

type client struct {
	id     string
	userID uint
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
}

// Hub tracks open notification streams per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*client]struct{}
	closed  bool
	log     zerolog.Logger
}

var _ ports.Publisher = (*Hub)(nil)

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[uint]map[*client]struct{}),
		log:     log,
	}
}

// Publish queues n on every open stream of userID. Slow clients miss the
// message rather than block the caller.
func (h *Hub) Publish(userID uint, n *domain.Notification) {
	payload, err := json.Marshal(Message{Type: "notification", Notification: n})
	if err != nil {
		h.log.Error().Err(err).Uint("user_id", userID).Msg("encode notification")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			h.log.Warn().Str("client_id", c.id).Uint("user_id", userID).Msg("websocket send buffer full, message dropped")
		}
	}
}

// Clients returns the number of open streams for userID.
func (h *Hub) Clients(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Serve runs the stream for an upgraded connection and blocks until the peer
// goes away, ctx is cancelled or the hub is closed. It always closes conn.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID uint) error {
	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	if !h.register(c) {
		_ = conn.Close()
		return ErrHubClosed
	}
	log := h.log.With().Str("client_id", c.id).Uint("user_id", userID).Logger()
	log.Debug().Msg("websocket connected")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.writeLoop(ctx, c, log)
	}()

	h.readLoop(c, log)

	h.unregister(c)
	close(c.done)
	_ = conn.Close()
	wg.Wait()
	log.Debug().Msg("websocket disconnected")
	return nil
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0)
	for _, set := range h.clients {
		for c := range set {
			conns = append(conns, c.conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
	metrics.WebsocketClients.Inc()
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.userID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			metrics.WebsocketClients.Dec()
		}
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
}

// readLoop only serves control frames; client messages are ignored.
func (h *Hub) readLoop(c *client, log zerolog.Logger) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
	}
}

func (h *Hub) writeLoop(ctx context.Context, c *client, log zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := h.write(c.conn, websocket.TextMessage, mustJSON(Message{Type: "connected"})); err != nil {
		_ = c.conn.Close()
		return
	}

	for {
		select {
		case <-c.done:
			return
		case <-ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = c.conn.Close()
			return
		case payload := <-c.send:
			if err := h.write(c.conn, websocket.TextMessage, payload); err != nil {
				log.Warn().Err(err).Msg("websocket write failed")
				_ = c.conn.Close()
				return
			}
			metrics.NotificationsPushedTotal.Inc()
		case <-ticker.C:
			if err := h.write(c.conn, websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, messageType int, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
