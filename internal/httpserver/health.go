package httpserver

import (
	"github.com/gin-gonic/gin"

	"auris-notifier/pkg/errors"
	"auris-notifier/pkg/response"
)

const serviceName = "auris-relay"

// healthCheck reports the hub state and, when configured, Redis reachability.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	redisState := "disabled"
	if srv.redis != nil {
		if _, err := srv.redis.Ping(ctx); err != nil {
			srv.logger.Warnf(ctx, "httpserver.healthCheck: redis ping failed: %v", err)
			response.HttpError(c, errors.NewServiceUnavailableHTTPError("Redis connection failed"))
			return
		}
		redisState = "connected"
	}

	stats, _ := srv.relayUC.GetStats(ctx)

	response.OK(c, gin.H{
		"status":             "healthy",
		"service":            serviceName,
		"active_connections": stats.ActiveConnections,
		"total_unique_users": stats.TotalUniqueUsers,
		"redis":              redisState,
	})
}
