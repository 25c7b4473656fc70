package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
	"auris-notifier/pkg/realtime"
)

// newRelayServer serves the use case on an httptest server. authUser plays
// the role of the token subject.
func newRelayServer(t *testing.T, authUser string) (relay.UseCase, string) {
	t.Helper()
	uc := New(log.NewNop(), Config{PongWait: 5 * time.Second, WriteWait: time.Second})
	go uc.Run()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		uc.Shutdown(ctx)
	})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if err := uc.Register(r.Context(), relay.ConnectionInput{Conn: conn, AuthUserID: authUser}); err != nil {
			conn.Close()
		}
	}))
	t.Cleanup(srv.Close)
	return uc, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialAndJoin(t *testing.T, url, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	msg, err := realtime.NewMessage(relay.EventJoin, relay.JoinPayload{UserID: userID})
	require.NoError(t, err)
	data, err := msg.ToJSON()
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
	return conn
}

func waitJoined(t *testing.T, uc relay.UseCase, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		stats, _ := uc.GetStats(context.Background())
		return stats.JoinedConnections == n
	}, 2*time.Second, 10*time.Millisecond)
}

func readLines(t *testing.T, conn *websocket.Conn) []realtime.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var out []realtime.Message
	for _, line := range strings.Split(string(data), "\n") {
		var m realtime.Message
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestProcessMessageReachesJoinedUser(t *testing.T) {
	uc, url := newRelayServer(t, "")
	conn := dialAndJoin(t, url, "42")
	waitJoined(t, uc, 1)

	err := uc.ProcessMessage(context.Background(), relay.ProcessMessageInput{
		Channel: "user_noti:42",
		Payload: []byte(`{"type":"notification","payload":{"content":"ready"}}`),
	})
	require.NoError(t, err)

	msgs := readLines(t, conn)
	require.NotEmpty(t, msgs)
	assert.Equal(t, relay.EventNotification, msgs[0].Type)
	assert.JSONEq(t, `{"content":"ready"}`, string(msgs[0].Payload))
	assert.False(t, msgs[0].Timestamp.IsZero())
}

func TestRepeatedJoinKeepsOneMembership(t *testing.T) {
	uc, url := newRelayServer(t, "")
	conn := dialAndJoin(t, url, "42")
	waitJoined(t, uc, 1)

	msg, _ := realtime.NewMessage(relay.EventJoin, relay.JoinPayload{UserID: "42"})
	data, _ := msg.ToJSON()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

	n, err := uc.SendToUser(context.Background(), "42", relay.EventNotification, map[string]string{"content": "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, _ := uc.GetStats(context.Background())
	assert.Equal(t, 1, stats.JoinedConnections)
}

func TestJoinMismatchClosesConnection(t *testing.T) {
	_, url := newRelayServer(t, "owner")
	conn := dialAndJoin(t, url, "intruder")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}

func TestProcessMessageRejectsBadInput(t *testing.T) {
	uc := New(log.NewNop(), Config{})

	err := uc.ProcessMessage(context.Background(), relay.ProcessMessageInput{Channel: "other:1", Payload: []byte(`{}`)})
	assert.ErrorIs(t, err, relay.ErrInvalidChannel)

	err = uc.ProcessMessage(context.Background(), relay.ProcessMessageInput{Channel: "user_noti:1", Payload: []byte(`{"payload":{}}`)})
	assert.ErrorIs(t, err, relay.ErrInvalidMessage)

	err = uc.ProcessMessage(context.Background(), relay.ProcessMessageInput{Channel: "user_noti:1", Payload: []byte(`nope`)})
	assert.ErrorIs(t, err, relay.ErrInvalidMessage)
}

func TestDisconnectLeavesHub(t *testing.T) {
	uc, url := newRelayServer(t, "")
	conn := dialAndJoin(t, url, "42")
	waitJoined(t, uc, 1)

	conn.Close()

	require.Eventually(t, func() bool {
		stats, _ := uc.GetStats(context.Background())
		return stats.ActiveConnections == 0
	}, 2*time.Second, 10*time.Millisecond)
}
