package caseapi

import (
	"context"
	"sync"
	"time"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
)

// tokenProvider caches the service bearer token for the Civil Case API and
// refreshes it on demand.
//
// A cached token is served while now < expiry - buffer. Once inside the
// buffer window (or past expiry) the next caller triggers a token request;
// concurrent callers collapse onto that same in-flight request via
// singleflight, so the API never sees duplicate token POSTs. The in-flight
// marker clears when the request resolves, success or failure, and a failed
// refresh is returned to every waiter.
type tokenProvider struct {
	http         *req.Client
	tokenURL     string
	clientID     string
	clientSecret string
	buffer       time.Duration

	group singleflight.Group

	mu      sync.Mutex
	token   string
	expires time.Time

	now func() time.Time
}

func newTokenProvider(http *req.Client, tokenURL, clientID, clientSecret string, buffer time.Duration) *tokenProvider {
	return &tokenProvider{
		http:         http,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		buffer:       buffer,
		now:          time.Now,
	}
}

// Bearer returns a token valid for at least the buffer window, requesting a
// fresh one if needed.
func (p *tokenProvider) Bearer(ctx context.Context) (string, error) {
	p.mu.Lock()
	token, expires := p.token, p.expires
	p.mu.Unlock()

	if token != "" && p.now().Before(expires.Add(-p.buffer)) {
		return token, nil
	}

	result, err, _ := p.group.Do("token", func() (any, error) {
		// Re-check under the guard: a waiter queued behind a successful
		// refresh must not trigger a second one.
		p.mu.Lock()
		token, expires := p.token, p.expires
		p.mu.Unlock()
		if token != "" && p.now().Before(expires.Add(-p.buffer)) {
			return token, nil
		}
		// The refresh outcome is shared by every collapsed waiter, so it
		// must not die with the first caller's context. The client timeout
		// still bounds the request.
		return p.request(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Invalidate drops the cached token, forcing the next Bearer call to
// re-authenticate. Called when the API answers 401 despite a token we
// believed valid.
func (p *tokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = ""
	p.expires = time.Time{}
	p.mu.Unlock()
}

func (p *tokenProvider) request(ctx context.Context) (string, error) {
	var body tokenResponse

	resp, err := p.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     p.clientID,
			"client_secret": p.clientSecret,
		}).
		SetSuccessResult(&body).
		Post(p.tokenURL)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccessState() {
		return "", newAPIError(resp.StatusCode, resp.Bytes())
	}

	expires := p.now().Add(time.Duration(body.ExpiresIn) * time.Second)

	p.mu.Lock()
	p.token = body.AccessToken
	p.expires = expires
	p.mu.Unlock()

	logger.FromContext(ctx).Debug("case api token refreshed",
		zap.Time("expires_at", expires),
	)
	return body.AccessToken, nil
}
