package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// RequestLogger logs every request with method, path, status and latency
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"clientIP":  c.ClientIP(),
			"requestID": GetRequestID(c),
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			log.LogWarn("Request completed with errors", fields)
			return
		}

		log.LogInfo("Request completed", fields)
	}
}
