// Package caseapi is the HTTP client for the external Civil Case API, which
// owns all case storage, eligibility, and state-transition rules. This
// package does shape translation and token management only; it enforces no
// business rules of its own.
package caseapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/imroc/req/v3"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

const maxPageSize = 100

// Client talks to the Civil Case API with a cached service bearer token.
type Client struct {
	http    *req.Client
	baseURL string
	tokens  *tokenProvider

	clientID     string
	clientSecret string
}

// New builds a Client from configuration.
func New(cfg *config.Config) *Client {
	httpClient := req.C().
		SetBaseURL(cfg.CaseAPI.BaseURL).
		SetTimeout(cfg.CaseAPI.Timeout()).
		SetCommonHeader("Accept", "application/json")

	return &Client{
		http:         httpClient,
		baseURL:      cfg.CaseAPI.BaseURL,
		tokens:       newTokenProvider(httpClient, "/oauth2/access_token", cfg.CaseAPI.ClientID, cfg.CaseAPI.ClientSecret, cfg.CaseAPI.TokenRefreshBuffer()),
		clientID:     cfg.CaseAPI.ClientID,
		clientSecret: cfg.CaseAPI.ClientSecret,
	}
}

// authed starts a request carrying the service bearer token.
func (c *Client) authed(ctx context.Context) (*req.Request, error) {
	token, err := c.tokens.Bearer(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire token: %w", err)
	}
	return c.http.R().SetContext(ctx).SetBearerAuthToken(token), nil
}

// checkResponse maps non-2xx responses onto package errors. A 401 drops the
// cached token so the next call re-authenticates.
func (c *Client) checkResponse(resp *req.Response) error {
	if resp.IsSuccessState() {
		return nil
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.tokens.Invalidate()
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return newAPIError(resp.StatusCode, resp.Bytes())
	}
}

// SearchCases returns one page of cases matching the query.
func (c *Client) SearchCases(ctx context.Context, q SearchQuery) (*CaseList, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = 20
	}

	r, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var body caseListDTO
	resp, err := r.
		SetQueryParams(q.queryParams()).
		SetQueryParam("page", fmt.Sprint(q.Page)).
		SetQueryParam("page_size", fmt.Sprint(q.PageSize)).
		SetSuccessResult(&body).
		Get("/cases")
	if err != nil {
		return nil, fmt.Errorf("search cases: %w", err)
	}
	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	list := &CaseList{
		Cases:    make([]domain.Case, 0, len(body.Results)),
		Count:    body.Count,
		Page:     body.Page,
		PageSize: body.PageSize,
	}
	if list.Page == 0 {
		list.Page = q.Page
	}
	if list.PageSize == 0 {
		list.PageSize = q.PageSize
	}
	for _, dto := range body.Results {
		list.Cases = append(list.Cases, dto.toDomain())
	}
	return list, nil
}

// GetCase fetches a single case by reference.
func (c *Client) GetCase(ctx context.Context, ref string) (*domain.Case, error) {
	r, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var body caseDTO
	resp, err := r.SetSuccessResult(&body).Get("/cases/" + ref)
	if err != nil {
		return nil, fmt.Errorf("get case %s: %w", ref, err)
	}
	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	kase := body.toDomain()
	return &kase, nil
}

// UpdateClientDetails replaces the personal details on a case. The API
// merges field-by-field server-side; this sends the full payload.
func (c *Client) UpdateClientDetails(ctx context.Context, ref string, details domain.ClientDetails) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetBody(personalDetailsFromDomain(details)).Patch("/cases/" + ref + "/personal_details")
	if err != nil {
		return fmt.Errorf("update client details on %s: %w", ref, err)
	}
	return c.checkResponse(resp)
}

// UpdateThirdParty creates or replaces the third-party contact on a case.
func (c *Client) UpdateThirdParty(ctx context.Context, ref string, tp domain.ThirdParty) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetBody(thirdPartyFromDomain(tp)).Put("/cases/" + ref + "/third_party")
	if err != nil {
		return fmt.Errorf("update third party on %s: %w", ref, err)
	}
	return c.checkResponse(resp)
}

// RemoveThirdParty deletes the third-party contact from a case.
func (c *Client) RemoveThirdParty(ctx context.Context, ref string) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.Delete("/cases/" + ref + "/third_party")
	if err != nil {
		return fmt.Errorf("remove third party on %s: %w", ref, err)
	}
	return c.checkResponse(resp)
}

// UpdateSupportNeeds replaces the client support needs on a case.
func (c *Client) UpdateSupportNeeds(ctx context.Context, ref string, sn domain.ClientSupportNeeds) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetBody(supportNeedsFromDomain(sn)).Put("/cases/" + ref + "/support_needs")
	if err != nil {
		return fmt.Errorf("update support needs on %s: %w", ref, err)
	}
	return c.checkResponse(resp)
}

// AcceptCase asks the API to move the case to Accepted. Validity rules live
// upstream; a rejection comes back as an *APIError with the upstream
// message.
func (c *Client) AcceptCase(ctx context.Context, ref string) error {
	return c.transition(ctx, ref, "accept")
}

// MarkPending asks the API to move the case to Pending.
func (c *Client) MarkPending(ctx context.Context, ref string) error {
	return c.transition(ctx, ref, "pending")
}

// CompleteCase asks the API to move the case to Completed.
func (c *Client) CompleteCase(ctx context.Context, ref string) error {
	return c.transition(ctx, ref, "complete")
}

// ReopenCase asks the API to reopen a closed or completed case.
func (c *Client) ReopenCase(ctx context.Context, ref string) error {
	return c.transition(ctx, ref, "reopen")
}

// CloseCase closes the case with the given outcome code.
func (c *Client) CloseCase(ctx context.Context, ref, outcomeCode string) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetBody(closeCaseRequest{OutcomeCode: outcomeCode}).Post("/cases/" + ref + "/close")
	if err != nil {
		return fmt.Errorf("close case %s: %w", ref, err)
	}
	return c.checkResponse(resp)
}

func (c *Client) transition(ctx context.Context, ref, event string) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.Post("/cases/" + ref + "/" + event)
	if err != nil {
		return fmt.Errorf("%s case %s: %w", event, ref, err)
	}
	return c.checkResponse(resp)
}

// ListOutcomeCodes returns the closure outcome codes the API accepts.
func (c *Client) ListOutcomeCodes(ctx context.Context) ([]domain.OutcomeCode, error) {
	r, err := c.authed(ctx)
	if err != nil {
		return nil, err
	}

	var body []outcomeCodeDTO
	resp, err := r.SetSuccessResult(&body).Get("/outcome_codes")
	if err != nil {
		return nil, fmt.Errorf("list outcome codes: %w", err)
	}
	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	codes := make([]domain.OutcomeCode, 0, len(body))
	for _, dto := range body {
		codes = append(codes, domain.OutcomeCode{Code: dto.Code, Description: dto.Description})
	}
	return codes, nil
}

// SubmitFeedback forwards a caseworker comment to the API.
func (c *Client) SubmitFeedback(ctx context.Context, fb domain.Feedback) error {
	r, err := c.authed(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetBody(feedbackRequest{
		CaseReference: fb.CaseReference,
		Issue:         fb.Issue,
		Comment:       fb.Comment,
	}).Post("/feedback")
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	return c.checkResponse(resp)
}

// CheckCredentials verifies a caseworker's username and password against the
// API's password grant and returns their profile. No token from this
// exchange is retained; the service token covers subsequent calls.
func (c *Client) CheckCredentials(ctx context.Context, username, password string) (*domain.Caseworker, error) {
	var token tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "password",
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"username":      username,
			"password":      password,
		}).
		SetSuccessResult(&token).
		Post("/oauth2/access_token")
	if err != nil {
		return nil, fmt.Errorf("check credentials: %w", err)
	}
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if !resp.IsSuccessState() {
		return nil, newAPIError(resp.StatusCode, resp.Bytes())
	}

	var profile caseworkerDTO
	resp, err = c.http.R().
		SetContext(ctx).
		SetBearerAuthToken(token.AccessToken).
		SetSuccessResult(&profile).
		Get("/caseworkers/me")
	if err != nil {
		return nil, fmt.Errorf("fetch caseworker profile: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, newAPIError(resp.StatusCode, resp.Bytes())
	}

	cw := &domain.Caseworker{Username: profile.Username, FullName: profile.FullName}
	if cw.Username == "" {
		cw.Username = username
	}
	return cw, nil
}

// search query params are optional; zero values are omitted to keep URLs
// clean in upstream access logs.
func (q SearchQuery) queryParams() map[string]string {
	params := map[string]string{}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if q.State != "" {
		params["state"] = q.State
	}
	return params
}
