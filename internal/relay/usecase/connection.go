package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
	"auris-notifier/pkg/realtime"
)

// Connection is one upgraded client socket.
type Connection struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages. Closed by the hub only.
	send chan []byte

	// Guarded by hub.mu.
	userID string

	authUserID string

	cfg    Config
	logger log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(hub *Hub, conn *websocket.Conn, authUserID string, cfg Config, logger log.Logger) *Connection {
	return &Connection{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, cfg.SendBuffer),
		authUserID: authUserID,
		cfg:        cfg,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// start runs the pumps. ctx carries log fields only.
func (c *Connection) start(ctx context.Context) {
	ctx = c.logger.With(ctx, "conn_id", uuid.NewString())
	go c.writePump(ctx)
	go c.readPump(ctx)
}

// readPump is the only reader of conn. Clients only send join envelopes;
// everything else is ignored.
func (c *Connection) readPump(ctx context.Context) {
	defer func() {
		c.hub.removeUnregistered(c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warnf(ctx, "relay.usecase.readPump: unexpected close: %v", err)
			}
			return
		}

		msg, err := realtime.FromJSON(data)
		if err != nil {
			c.logger.Warnf(ctx, "relay.usecase.readPump: dropping malformed message: %v", err)
			continue
		}

		switch msg.Type {
		case relay.EventJoin:
			if err := c.handleJoin(ctx, *msg); err != nil {
				c.logger.Warnf(ctx, "relay.usecase.readPump: join rejected: %v", err)
				code := websocket.ClosePolicyViolation
				if errors.Is(err, relay.ErrNotRegistered) {
					code = websocket.CloseGoingAway
				}
				c.writeClose(code, err.Error())
				return
			}
		default:
			c.logger.Debugf(ctx, "relay.usecase.readPump: ignoring %q", msg.Type)
		}
	}
}

func (c *Connection) handleJoin(ctx context.Context, msg realtime.Message) error {
	var p relay.JoinPayload
	if err := msg.Decode(&p); err != nil || p.UserID == "" {
		return relay.ErrInvalidMessage
	}
	if c.authUserID != "" && c.authUserID != p.UserID {
		return relay.ErrUserMismatch
	}

	joined, err := c.hub.join(c, p.UserID)
	if err != nil {
		return err
	}
	if joined {
		c.logger.Infof(ctx, "relay.usecase.handleJoin: connection joined as %s", p.UserID)
	} else {
		c.logger.Debugf(ctx, "relay.usecase.handleJoin: repeated join for %s", p.UserID)
	}
	return nil
}

// writePump is the only writer of data frames. Messages queued while a frame
// is being written go out in the same frame, one per line.
func (c *Connection) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				next, ok := <-c.send
				if !ok {
					break
				}
				w.Write([]byte{'\n'})
				w.Write(next)
			}

			if err := w.Close(); err != nil {
				c.logger.Debugf(ctx, "relay.usecase.writePump: write failed: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Connection) writeClose(code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.cfg.WriteWait))
}

// Close stops the pumps. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
