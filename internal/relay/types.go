package relay

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

// ChannelPrefix is the Redis channel prefix; the rest of the channel is the
// target user id.
const (
	ChannelPrefix  = "user_noti:"
	ChannelPattern = ChannelPrefix + "*"
)

// Events the relay understands.
const (
	EventJoin         = "join"
	EventNotification = "notification"
)

// ConnectionInput is a freshly upgraded connection. AuthUserID is the token
// subject, empty when tokens are not required.
type ConnectionInput struct {
	Conn       *websocket.Conn
	AuthUserID string
}

// ProcessMessageInput is the raw input from Redis.
type ProcessMessageInput struct {
	Channel string
	Payload []byte
}

// RedisMessage is what publishers put on a user channel.
type RedisMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is the payload of a client's join event.
type JoinPayload struct {
	UserID string `json:"user_id"`
}

type HubStats struct {
	ActiveConnections int   `json:"active_connections"`
	JoinedConnections int   `json:"joined_connections"`
	TotalUniqueUsers  int   `json:"total_unique_users"`
	MessagesSent      int64 `json:"messages_sent"`
	MessagesDropped   int64 `json:"messages_dropped"`
}
