package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/ctxkey"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// Gin context keys for the authenticated request.
const (
	CaseworkerKey = "caseworker"
	SessionKey    = "session"
)

// SessionAuth resolves the session cookie to a caseworker. Requests without
// a live session are redirected to the login page with the original URL in
// the next parameter so login can return them.
func SessionAuth(auth *service.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		ctx := c.Request.Context()
		cw, sess, err := auth.Authenticate(ctx, token)
		if err != nil {
			if !errors.Is(err, service.ErrNotAuthenticated) {
				logger.FromContext(ctx).Error("session lookup failed", zap.Error(err))
			}
			redirectToLogin(c)
			return
		}

		c.Set(CaseworkerKey, cw)
		c.Set(SessionKey, sess)

		ctx = context.WithValue(ctx, ctxkey.Caseworker, cw)
		ctx = context.WithValue(ctx, ctxkey.SessionID, sess.ID)
		requestLogger := logger.FromContext(ctx).With(zap.String("username", cw.Username))
		c.Request = c.Request.WithContext(logger.IntoContext(ctx, requestLogger))

		c.Next()
	}
}

// CaseworkerFrom returns the authenticated caseworker set by SessionAuth.
func CaseworkerFrom(c *gin.Context) *domain.Caseworker {
	if v, ok := c.Get(CaseworkerKey); ok {
		if cw, ok := v.(*domain.Caseworker); ok {
			return cw
		}
	}
	return nil
}

// SessionFrom returns the session record set by SessionAuth.
func SessionFrom(c *gin.Context) *service.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*service.Session); ok {
			return s
		}
	}
	return nil
}

func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.RequestURI()
	target := "/login"
	if next != "" && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}
	c.Redirect(http.StatusFound, target)
	c.Abort()
}
