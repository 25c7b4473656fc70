package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"auris-notifier/pkg/log"
)

// Logger logs one line per request.
func Logger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf(c.Request.Context(), "middleware.Logger: %s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
