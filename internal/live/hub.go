package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dreamsbydutch/pgc-tour-sub006/internal/logging"
)

// broadcastBuffer absorbs refresh bursts without blocking the consumer.
const broadcastBuffer = 64

// Message is the envelope written to websocket clients.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sentAt"`
}

// MessageTypeLeaderboard tags full leaderboard documents.
const MessageTypeLeaderboard = "leaderboard"

// Hub fans leaderboard updates out to connected websocket clients. Client
// sends and channel closes are serialized through the Run loop. A nil *Hub
// accepts and drops broadcasts, so the consumer can run without one.
type Hub struct {
	logger *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub constructs an idle hub; Run starts its loop.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// Run serves the hub until the context is cancelled; on exit all client
// connections are closed and further attaches are refused.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		case data := <-h.broadcast:
			h.fanOut(data)
		}
	}
}

// Broadcast queues a leaderboard document for all connected clients. The
// send never blocks; under backpressure the update is dropped, the next
// refresh supersedes it anyway.
func (h *Hub) Broadcast(lb Leaderboard) {
	if h == nil {
		return
	}
	payload, err := json.Marshal(lb)
	if err != nil {
		logging.Warn(h.logger, "leaderboard broadcast marshal failed", slog.String("error", err.Error()))
		return
	}
	msg, err := json.Marshal(Message{Type: MessageTypeLeaderboard, Payload: payload, SentAt: time.Now().UTC()})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		logging.Warn(h.logger, "leaderboard broadcast buffer full, dropping update")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) attach(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	logging.Info(h.logger, "websocket client connected",
		slog.String("client_id", c.id), slog.Int(logging.FieldCount, total))
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	total := len(h.clients)
	h.mu.Unlock()
	if ok {
		close(c.send)
		logging.Info(h.logger, "websocket client disconnected",
			slog.String("client_id", c.id), slog.Int(logging.FieldCount, total))
	}
}

func (h *Hub) fanOut(data []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if c.trySend(data) {
			continue
		}
		// A full client buffer means the peer stopped reading; drop them.
		logging.Warn(h.logger, "websocket client too slow, disconnecting", slog.String("client_id", c.id))
		h.remove(c)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
