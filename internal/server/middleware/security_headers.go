package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
)

// SecurityHeaders sets baseline security headers for all responses. The
// pages are server rendered with no inline scripts, so the default CSP is
// strict and operators only override it to loosen style or image sources.
func SecurityHeaders(cfg config.CSPConfig) gin.HandlerFunc {
	policy := strings.TrimSpace(cfg.Policy)
	if policy == "" {
		policy = config.DefaultCSPPolicy
	}

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.Enabled {
			c.Header("Content-Security-Policy", policy)
		}
		c.Next()
	}
}
