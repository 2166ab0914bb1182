package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
)

func serveWithHeaders(cfg config.CSPConfig) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(SecurityHeaders(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSecurityHeaders(t *testing.T) {
	t.Run("sets_baseline_headers", func(t *testing.T) {
		w := serveWithHeaders(config.CSPConfig{})

		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	})

	t.Run("csp_disabled_by_default", func(t *testing.T) {
		w := serveWithHeaders(config.CSPConfig{})
		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
	})

	t.Run("enabled_csp_uses_default_policy", func(t *testing.T) {
		w := serveWithHeaders(config.CSPConfig{Enabled: true})
		assert.Equal(t, config.DefaultCSPPolicy, w.Header().Get("Content-Security-Policy"))
	})

	t.Run("enabled_csp_honours_override", func(t *testing.T) {
		w := serveWithHeaders(config.CSPConfig{Enabled: true, Policy: "default-src 'none'"})
		assert.Equal(t, "default-src 'none'", w.Header().Get("Content-Security-Policy"))
	})
}

func TestRequestLoggerEchoesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates_an_id_when_absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps_the_inbound_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-42")
		r.ServeHTTP(w, req)
		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	})
}
