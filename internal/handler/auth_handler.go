package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// AuthHandler serves the sign-in and sign-out pages.
type AuthHandler struct {
	cfg  *config.Config
	auth *service.AuthService
}

func NewAuthHandler(cfg *config.Config, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, auth: auth}
}

// ShowLogin renders the sign-in page. GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login", viewdata.Login{
		Base: baseData(c),
		Next: safeNext(c.Query("next")),
	})
}

// Login checks the credentials and starts a session. POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	_ = c.ShouldBind(&form)

	render := func(errs forms.Errors) {
		c.HTML(http.StatusOK, "login", viewdata.Login{
			Base:   baseData(c),
			Form:   form,
			Errors: errs,
			Next:   safeNext(form.Next),
		})
	}

	if errs := form.Validate(); errs.Any() {
		render(errs)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, caseapi.ErrInvalidCredentials) {
		render(forms.Errors{{Field: "username", Message: "Enter a correct username and password"}})
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}

	// Session cookie, no Max-Age: the server-side record's sliding TTL
	// decides when the caseworker is logged out.
	h.setSessionCookie(c, token, 0)

	target := safeNext(form.Next)
	if target == "" {
		target = "/cases"
	}
	c.Redirect(http.StatusFound, target)
}

// Logout ends the session and clears the cookie. POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			renderError(c, err)
			return
		}
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, value, maxAge, "/", "", h.cfg.Session.CookieSecure, true)
}

// safeNext keeps post-login redirects on-site: a path only, no scheme or
// host, no protocol-relative tricks.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
