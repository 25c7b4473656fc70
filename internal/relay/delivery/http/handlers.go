package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/response"
)

const rejectWriteWait = time.Second

// HandleWebSocket upgrades GET /ws. The connection joins a user only after
// it sends a join event.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := h.processUpgradeRequest(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf(ctx, "relay.delivery.http.HandleWebSocket: upgrade failed: %v", err)
		return
	}

	if err := h.uc.Register(ctx, relay.ConnectionInput{Conn: conn, AuthUserID: userID}); err != nil {
		h.logger.Warnf(ctx, "relay.delivery.http.HandleWebSocket: register failed: %v", err)
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(rejectWriteWait))
		conn.Close()
	}
}

// HandleStats returns the hub counters.
func (h *Handler) HandleStats(c *gin.Context) {
	stats, err := h.uc.GetStats(c.Request.Context())
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}
	response.OK(c, stats)
}
