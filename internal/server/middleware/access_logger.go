package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/ctxkey"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
)

// AccessLogger emits one structured line per completed request.
func AccessLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		c.Next()

		// Health probes are high frequency noise.
		if path == "/health" {
			return
		}

		latency := time.Since(startTime)

		fields := []zap.Field{
			zap.String("component", "http.access"),
			zap.Int("status_code", c.Writer.Status()),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		}
		if cw, ok := c.Request.Context().Value(ctxkey.Caseworker).(*domain.Caseworker); ok {
			fields = append(fields, zap.String("username", cw.Username))
		}

		l := logger.FromContext(c.Request.Context()).With(fields...)
		l.Info("http request completed")

		if len(c.Errors) > 0 {
			l.Warn("http request contains gin errors", zap.String("errors", c.Errors.String()))
		}
	}
}
