package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the relay routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws", h.HandleWebSocket)
	r.GET("/metrics", h.HandleStats)
}
