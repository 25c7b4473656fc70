package middleware

import (
	"github.com/gin-gonic/gin"

	"auris-notifier/pkg/discord"
	"auris-notifier/pkg/log"
	"auris-notifier/pkg/response"
)

// Recovery turns handler panics into 500 responses. discordClient may be nil.
func Recovery(logger log.Logger, discordClient discord.IDiscord) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "middleware.Recovery: panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.PanicError(c, err, discordClient)
			}
		}()
		c.Next()
	}
}
