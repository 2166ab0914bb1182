package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
)

// ErrNotAuthenticated means the cookie token was missing, malformed,
// expired, or pointed at a dead session. All of these behave as logged out.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService verifies caseworker credentials against the Civil Case API
// and manages the session behind the cookie. The cookie value is a signed
// JWT carrying only the session ID; everything else lives server-side.
type AuthService struct {
	api      CaseAPI
	sessions SessionStore
	cfg      *config.Config
}

func NewAuthService(api CaseAPI, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{api: api, sessions: sessions, cfg: cfg}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Login checks the credentials upstream and, on success, creates a session
// and returns the signed cookie token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	cw, err := s.api.CheckCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	sess := &Session{
		ID:        uuid.New().String(),
		Username:  cw.Username,
		FullName:  cw.FullName,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := s.signToken(sess)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	logger.FromContext(ctx).Info("caseworker logged in",
		zap.String("username", sess.Username),
	)
	return token, nil
}

// Authenticate resolves a cookie token to its caseworker and session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Caseworker, *Session, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, nil, ErrNotAuthenticated
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, nil, err
	}

	return &domain.Caseworker{
		Username:  sess.Username,
		FullName:  sess.FullName,
		SessionID: sess.ID,
	}, sess, nil
}

// Logout deletes the session behind the token. A token that no longer
// resolves is already logged out, so that is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("caseworker logged out")
	return nil
}

func (s *AuthService) signToken(sess *Session) (string, error) {
	// No exp claim: session lifetime is owned by the store, whose TTL
	// slides on every read. A fixed token expiry would log an active
	// caseworker out one TTL after login no matter what.
	claims := sessionClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sess.Username,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Session.Secret))
}

func (s *AuthService) parseToken(token string) (*sessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Session.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrNotAuthenticated
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.SessionID == "" {
		return nil, ErrNotAuthenticated
	}
	return claims, nil
}
