package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type message struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans messages out to the websocket clients of one user. All
// membership changes go through Run's goroutine; the mutex only guards
// reads from ClientCount.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan message, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub traffic until ctx is done, then closes every client.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]struct{})
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(set)
			h.mutex.Unlock()
			h.logger.Debug("ws connected", zap.Stringer("user_id", client.userID), zap.Int("user_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer; drop it rather than block everyone.
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug("ws disconnected", zap.Stringer("user_id", client.userID), zap.Int("user_clients", len(set)))
}

// Register adds client to the hub. It reports false once the hub has
// stopped, in which case the caller owns the connection.
func (h *Hub) Register(client *Client) bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client. It returns immediately once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues payload for every client of userID. It never blocks; when the
// queue is full the message is dropped.
func (h *Hub) Send(userID uuid.UUID, payload []byte) bool {
	if h == nil {
		return false
	}
	select {
	case h.broadcast <- message{userID: userID, payload: payload}:
		return true
	default:
		h.logger.Warn("ws message dropped", zap.String("reason", "buffer_full"), zap.Stringer("user_id", userID))
		return false
	}
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
