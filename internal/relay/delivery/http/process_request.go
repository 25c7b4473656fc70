package http

import (
	"github.com/gin-gonic/gin"

	"auris-notifier/internal/relay"
)

// processUpgradeRequest resolves the caller's user id before upgrade. It
// returns an empty id when tokens are not required.
func (h *Handler) processUpgradeRequest(c *gin.Context) (string, error) {
	if h.limiter != nil {
		if err := h.limiter.Allow(c.ClientIP()); err != nil {
			h.logger.Warnf(c.Request.Context(), "relay.delivery.http.processUpgradeRequest: %v", err)
			return "", relay.ErrRateLimited
		}
	}

	if !h.requireToken {
		return "", nil
	}

	var req UpgradeReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return "", relay.ErrMissingToken
	}
	if req.Token == "" {
		req.Token = bearerToken(c.GetHeader("Authorization"))
	}
	if req.Token == "" {
		return "", relay.ErrMissingToken
	}

	userID, err := h.verifier.ExtractUserID(req.Token)
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "relay.delivery.http.processUpgradeRequest: token verification failed: %v", err)
		return "", relay.ErrInvalidToken
	}
	return userID, nil
}
