package middleware

import (
	"net/http"
	"sport-reel-generator/application/ports/outbound"
	"time"

	"github.com/gin-gonic/gin"
)

func RequestLogger(logger outbound.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := map[string]interface{}{
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.WarnWithFields("request completed with server error", fields)
			return
		}
		logger.InfoWithFields("request completed", fields)
	}
}
