package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
)

// TokenVerifier resolves a token to its user id.
type TokenVerifier interface {
	ExtractUserID(tokenString string) (string, error)
}

// RateLimiter admits or rejects a connection attempt from key.
type RateLimiter interface {
	Allow(key string) error
}

type Handler struct {
	uc           relay.UseCase
	verifier     TokenVerifier
	limiter      RateLimiter
	logger       log.Logger
	requireToken bool
	upgrader     websocket.Upgrader
}

// New creates the WebSocket handler. verifier may be nil when tokens are not
// required.
func New(uc relay.UseCase, verifier TokenVerifier, logger log.Logger, requireToken bool) *Handler {
	return &Handler{
		uc:           uc,
		verifier:     verifier,
		logger:       logger,
		requireToken: requireToken,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Listeners are native clients, not browser pages.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SetRateLimiter limits upgrades per client IP.
func (h *Handler) SetRateLimiter(l RateLimiter) {
	h.limiter = l
}
