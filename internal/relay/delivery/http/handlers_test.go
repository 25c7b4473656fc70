package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auris-notifier/internal/relay"
	"auris-notifier/internal/relay/usecase"
	"auris-notifier/pkg/log"
)

type staticVerifier struct {
	tokens map[string]string
}

func (v staticVerifier) ExtractUserID(token string) (string, error) {
	if id, ok := v.tokens[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func newServer(t *testing.T, requireToken bool) (*httptest.Server, relay.UseCase) {
	t.Helper()
	uc := usecase.New(log.NewNop(), usecase.Config{})
	go uc.Run()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		uc.Shutdown(ctx)
	})

	h := New(uc, staticVerifier{tokens: map[string]string{"good": "42"}}, log.NewNop(), requireToken)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, uc
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
}

func TestUpgradeWithoutTokenWhenNotRequired(t *testing.T) {
	srv, uc := newServer(t, false)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		stats, _ := uc.GetStats(context.Background())
		return stats.ActiveConnections == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUpgradeRequiresToken(t *testing.T) {
	srv, _ := newServer(t, true)

	tests := []struct {
		name   string
		query  string
		header http.Header
		status int
	}{
		{"missing", "", nil, http.StatusUnauthorized},
		{"invalid", "?token=bad", nil, http.StatusUnauthorized},
		{"query", "?token=good", nil, http.StatusSwitchingProtocols},
		{"bearer", "", http.Header{"Authorization": {"Bearer good"}}, http.StatusSwitchingProtocols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.query), tt.header)
			if conn != nil {
				conn.Close()
			}
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusSwitchingProtocols {
				assert.ErrorIs(t, err, websocket.ErrBadHandshake)
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	srv, _ := newServer(t, false)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken(""))
}

type denyAll struct{}

func (denyAll) Allow(string) error { return errors.New("slow down") }

func TestUpgradeRateLimited(t *testing.T) {
	uc := usecase.New(log.NewNop(), usecase.Config{})
	h := New(uc, nil, log.NewNop(), false)
	h.SetRateLimiter(denyAll{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
