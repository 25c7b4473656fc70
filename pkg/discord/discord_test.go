package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresWebhook(t *testing.T) {
	_, err := New(nil, "", "token", Config{})
	assert.ErrorIs(t, err, errWebhookRequired)
}

func TestSendErrorPostsEmbed(t *testing.T) {
	var got WebhookPayload
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d, err := New(nil, "123", "abc", Config{BaseURL: srv.URL})
	require.NoError(t, err)

	err = d.SendError(context.Background(), "listener fault", "notification handler", errors.New("missing content"))
	require.NoError(t, err)

	assert.Equal(t, "/123/abc", path)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "listener fault", got.Embeds[0].Title)
	assert.Equal(t, ColorError, got.Embeds[0].Color)
	require.Len(t, got.Embeds[0].Fields, 1)
	assert.Equal(t, "missing content", got.Embeds[0].Fields[0].Value)
	assert.Equal(t, DefaultUsername, got.Username)
}

func TestSendRetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d, err := New(nil, "1", "t", Config{BaseURL: srv.URL, RetryCount: 2, RetryDelay: time.Millisecond})
	require.NoError(t, err)

	err = d.SendMessage(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendMessageTooLong(t *testing.T) {
	d, err := New(nil, "1", "t", Config{})
	require.NoError(t, err)

	err = d.SendMessage(context.Background(), strings.Repeat("x", MaxMessageLength+1))
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
}
