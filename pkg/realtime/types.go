package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Synthetic events raised by the socket itself.
const (
	EventConnect    = "connect"
	EventDisconnect = "disconnect"
)

// Message is the envelope exchanged with the server, one JSON object per line.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// DisconnectPayload is the payload of EventDisconnect.
type DisconnectPayload struct {
	Reason string `json:"reason"`
}

// Handler processes one event. Handlers run on the socket's event loop,
// one at a time, so a blocking handler holds back every later event.
type Handler func(ctx context.Context, msg Message) error

// FaultHandler receives errors returned by handlers.
type FaultHandler func(ctx context.Context, event string, err error)

// Config holds the socket configuration
type Config struct {
	URL    string
	Header http.Header

	DialTimeout    time.Duration
	WriteWait      time.Duration
	PingTimeout    time.Duration // 0 disables the read deadline
	MaxMessageSize int64
	InboxSize      int

	Reconnect       bool
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxAttempts     int // consecutive failed dials, 0 = unlimited
}

const (
	defaultDialTimeout     = 10 * time.Second
	defaultWriteWait       = 10 * time.Second
	defaultMaxMessageSize  = 64 << 10
	defaultInboxSize       = 64
	defaultInitialInterval = time.Second
	defaultMaxInterval     = 5 * time.Second
)

func (c *Config) applyDefaults() {
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	if c.WriteWait <= 0 {
		c.WriteWait = defaultWriteWait
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = defaultMaxMessageSize
	}
	if c.InboxSize <= 0 {
		c.InboxSize = defaultInboxSize
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = defaultInitialInterval
	}
	if c.MaxInterval < c.InitialInterval {
		c.MaxInterval = max(defaultMaxInterval, c.InitialInterval)
	}
}
