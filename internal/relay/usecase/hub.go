package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
)

// Hub maintains the set of active connections and which user each one has
// joined as.
type Hub struct {
	// Registered connections.
	clients map[*Connection]bool

	// user_id -> set of joined connections
	users map[string]map[*Connection]bool

	// Unregister requests from the read pumps.
	unregister chan *Connection

	// Guards clients, users and Connection.userID.
	mu sync.RWMutex

	maxConnections int

	messagesSent    atomic.Int64
	messagesDropped atomic.Int64

	logger log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func newHub(logger log.Logger, maxConnections int) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:        make(map[*Connection]bool),
		users:          make(map[string]map[*Connection]bool),
		unregister:     make(chan *Connection, 64),
		maxConnections: maxConnections,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info(context.Background(), "relay.usecase.Hub.run: shutting down")
			h.closeAll()
			return

		case c := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(c)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) register(c *Connection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx.Err() != nil {
		return relay.ErrHubClosed
	}
	if len(h.clients) >= h.maxConnections {
		return relay.ErrMaxConnectionsReached
	}
	h.clients[c] = true
	return nil
}

// join binds c to userID and reports whether membership changed. Repeating
// the same join is a no-op; joining as another user moves the connection.
// A connection the hub no longer tracks gets ErrNotRegistered.
func (h *Hub) join(c *Connection, userID string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return false, relay.ErrNotRegistered
	}
	if c.userID == userID {
		return false, nil
	}

	if c.userID != "" {
		h.leaveLocked(c)
	}
	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[*Connection]bool)
	}
	h.users[userID][c] = true
	c.userID = userID
	return true, nil
}

// removeUnregistered hands c to the run loop, or drops it if the hub is gone.
func (h *Hub) removeUnregistered(c *Connection) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) removeLocked(c *Connection) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	h.leaveLocked(c)
	close(c.send)
}

func (h *Hub) leaveLocked(c *Connection) {
	if conns, ok := h.users[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, c.userID)
		}
	}
}

// SendToUser queues data on every connection joined as userID and returns
// how many accepted it. Full buffers drop the message.
func (h *Hub) SendToUser(userID string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for c := range h.users[userID] {
		select {
		case c.send <- data:
			sent++
		default:
			h.messagesDropped.Add(1)
			h.logger.Warnf(context.Background(), "relay.usecase.Hub.SendToUser: buffer full for user %s", userID)
		}
	}
	h.messagesSent.Add(int64(sent))
	return sent
}

func (h *Hub) Stats() relay.HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	joined := 0
	for _, conns := range h.users {
		joined += len(conns)
	}
	return relay.HubStats{
		ActiveConnections: len(h.clients),
		JoinedConnections: joined,
		TotalUniqueUsers:  len(h.users),
		MessagesSent:      h.messagesSent.Load(),
		MessagesDropped:   h.messagesDropped.Load(),
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.Close()
		close(c.send)
	}
	h.clients = make(map[*Connection]bool)
	h.users = make(map[string]map[*Connection]bool)
}

func (h *Hub) shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
