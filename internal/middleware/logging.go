package middleware

import (
	"time"

	"neonix-orders/internal/logger"
	"neonix-orders/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logging logs every request in structured JSON and feeds the
// process-wide request counters.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		metrics.Default.Observe(status)

		logger.FromCtx(c.Request.Context()).Info("incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.String("ip", c.ClientIP()),
			zap.Duration("duration_ms", time.Since(start)),
		)
	}
}
