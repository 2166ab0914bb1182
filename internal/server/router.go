// Package server assembles the gin engine, routes, and the http.Server.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server/middleware"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/web"
)

// ProviderSet is the Wire provider set for the server layer.
var ProviderSet = wire.NewSet(
	SetupRouter,
	NewHTTPServer,
)

// SetupRouter builds the engine: templates, static assets, middleware, and
// routes. Everything except login, health, and static sits behind the
// session.
func SetupRouter(
	cfg *config.Config,
	h *handler.Handlers,
	auth *service.AuthService,
) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.Use(middleware.RequestLogger())
	r.Use(middleware.AccessLogger())
	r.Use(middleware.SecurityHeaders(cfg.Security.CSP))

	registerRoutes(r, h, auth, cfg)
	return r, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, auth *service.AuthService, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/cases")
	})

	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	// Logout works regardless of session state.
	r.POST("/logout", h.Auth.Logout)

	authed := r.Group("/", middleware.SessionAuth(auth, cfg))

	authed.GET("/cases", h.Cases.List)
	authed.GET("/cases/:ref", h.Cases.Detail)

	authed.GET("/cases/:ref/client-details", h.ClientDetails.Edit)
	authed.POST("/cases/:ref/client-details", h.ClientDetails.Update)

	authed.GET("/cases/:ref/third-party", h.ThirdParty.Edit)
	authed.POST("/cases/:ref/third-party", h.ThirdParty.Update)
	authed.POST("/cases/:ref/third-party/delete", h.ThirdParty.Remove)
	authed.POST("/cases/:ref/third-party/undo", h.ThirdParty.Undo)

	authed.GET("/cases/:ref/support-needs", h.SupportNeeds.Edit)
	authed.POST("/cases/:ref/support-needs", h.SupportNeeds.Update)

	authed.POST("/cases/:ref/accept", h.Transitions.Accept)
	authed.POST("/cases/:ref/pending", h.Transitions.Pending)
	authed.POST("/cases/:ref/complete", h.Transitions.Complete)
	authed.POST("/cases/:ref/reopen", h.Transitions.Reopen)
	authed.GET("/cases/:ref/close", h.Transitions.CloseForm)
	authed.POST("/cases/:ref/close", h.Transitions.Close)

	authed.GET("/feedback", h.Feedback.Form)
	authed.POST("/feedback", h.Feedback.Submit)
}

// NewHTTPServer wraps the engine in an http.Server with the configured
// timeouts.
func NewHTTPServer(cfg *config.Config, r *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout(),
		IdleTimeout:       cfg.Server.IdleTimeout(),
	}
}
