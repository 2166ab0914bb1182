package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/config"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server/middleware"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubCaseAPI backs the real services in handler tests.
type stubCaseAPI struct {
	cases      map[string]*domain.Case
	caseworker *domain.Caseworker
	loginErr   error
	callErr    error
	// transitionErr fails only the state-change calls, leaving reads
	// working so re-renders can fetch the case.
	transitionErr error
	transitions   []string
	feedback      []domain.Feedback
	outcomes      []domain.OutcomeCode
}

func newStubCaseAPI() *stubCaseAPI {
	return &stubCaseAPI{
		cases:      map[string]*domain.Case{},
		caseworker: &domain.Caseworker{Username: "case.worker", FullName: "Casey Worker"},
		outcomes: []domain.OutcomeCode{
			{Code: "CLSP", Description: "Closed, speaking to provider"},
			{Code: "DREFER", Description: "Referred elsewhere"},
		},
	}
}

func (s *stubCaseAPI) CheckCredentials(ctx context.Context, username, password string) (*domain.Caseworker, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.caseworker, nil
}

func (s *stubCaseAPI) SearchCases(ctx context.Context, q caseapi.SearchQuery) (*caseapi.CaseList, error) {
	if s.callErr != nil {
		return nil, s.callErr
	}
	list := &caseapi.CaseList{Page: q.Page, PageSize: q.PageSize}
	for _, c := range s.cases {
		list.Cases = append(list.Cases, *c)
	}
	list.Count = len(list.Cases)
	return list, nil
}

func (s *stubCaseAPI) GetCase(ctx context.Context, ref string) (*domain.Case, error) {
	if s.callErr != nil {
		return nil, s.callErr
	}
	c, ok := s.cases[ref]
	if !ok {
		return nil, caseapi.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCaseAPI) UpdateClientDetails(ctx context.Context, ref string, details domain.ClientDetails) error {
	if s.callErr != nil {
		return s.callErr
	}
	s.cases[ref].Client = details
	return nil
}

func (s *stubCaseAPI) UpdateThirdParty(ctx context.Context, ref string, tp domain.ThirdParty) error {
	if s.callErr != nil {
		return s.callErr
	}
	cp := tp
	s.cases[ref].ThirdParty = &cp
	return nil
}

func (s *stubCaseAPI) RemoveThirdParty(ctx context.Context, ref string) error {
	if s.callErr != nil {
		return s.callErr
	}
	s.cases[ref].ThirdParty = nil
	return nil
}

func (s *stubCaseAPI) UpdateSupportNeeds(ctx context.Context, ref string, sn domain.ClientSupportNeeds) error {
	if s.callErr != nil {
		return s.callErr
	}
	cp := sn
	s.cases[ref].SupportNeeds = &cp
	return nil
}

func (s *stubCaseAPI) AcceptCase(ctx context.Context, ref string) error   { return s.record("accept") }
func (s *stubCaseAPI) MarkPending(ctx context.Context, ref string) error  { return s.record("pending") }
func (s *stubCaseAPI) CompleteCase(ctx context.Context, ref string) error { return s.record("complete") }
func (s *stubCaseAPI) ReopenCase(ctx context.Context, ref string) error   { return s.record("reopen") }

func (s *stubCaseAPI) CloseCase(ctx context.Context, ref, outcomeCode string) error {
	if s.transitionErr != nil {
		return s.transitionErr
	}
	if s.callErr != nil {
		return s.callErr
	}
	s.transitions = append(s.transitions, "close:"+outcomeCode)
	return nil
}

func (s *stubCaseAPI) record(event string) error {
	if s.transitionErr != nil {
		return s.transitionErr
	}
	if s.callErr != nil {
		return s.callErr
	}
	s.transitions = append(s.transitions, event)
	return nil
}

func (s *stubCaseAPI) ListOutcomeCodes(ctx context.Context) ([]domain.OutcomeCode, error) {
	if s.callErr != nil {
		return nil, s.callErr
	}
	return s.outcomes, nil
}

func (s *stubCaseAPI) SubmitFeedback(ctx context.Context, fb domain.Feedback) error {
	if s.callErr != nil {
		return s.callErr
	}
	s.feedback = append(s.feedback, fb)
	return nil
}

// memoryStore is an in-memory service.SessionStore.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]service.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]service.Session{}}
}

func (m *memoryStore) Create(ctx context.Context, s *service.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	cp := s
	return &cp, nil
}

func (m *memoryStore) Update(ctx context.Context, s *service.Session) error {
	return m.Create(ctx, s)
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type fixture struct {
	api    *stubCaseAPI
	store  *memoryStore
	cfg    *config.Config
	sess   *service.Session
	router *gin.Engine
}

// newFixture builds a router with real services over the stub API and a
// fake authenticated session, mirroring the production route table.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	api := newStubCaseAPI()
	store := newMemoryStore()
	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "ccui_session",
			Secret:     "0123456789abcdef0123456789abcdef",
			TTLMinutes: 30,
		},
	}

	authSvc := service.NewAuthService(api, store, cfg)
	caseSvc := service.NewCaseService(api, store)

	sess := &service.Session{ID: "sess-1", Username: "case.worker", FullName: "Casey Worker", CreatedAt: time.Now()}
	require.NoError(t, store.Create(context.Background(), sess))

	h := &Handlers{
		Auth:          NewAuthHandler(cfg, authSvc),
		Cases:         NewCaseHandler(caseSvc),
		ClientDetails: NewClientDetailsHandler(caseSvc),
		ThirdParty:    NewThirdPartyHandler(caseSvc),
		SupportNeeds:  NewSupportNeedsHandler(caseSvc),
		Transitions:   NewTransitionHandler(caseSvc),
		Feedback:      NewFeedbackHandler(caseSvc),
	}

	r := gin.New()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)

	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)

	fakeAuth := func(c *gin.Context) {
		c.Set(middleware.CaseworkerKey, &domain.Caseworker{
			Username: sess.Username, FullName: sess.FullName, SessionID: sess.ID,
		})
		if latest, err := store.Get(c.Request.Context(), sess.ID); err == nil {
			c.Set(middleware.SessionKey, latest)
		}
		c.Next()
	}

	authed := r.Group("/", fakeAuth)
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

	return &fixture{api: api, store: store, cfg: cfg, sess: sess, router: r}
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	f.router.ServeHTTP(w, req)
	return w
}

func sampleCase(ref string) *domain.Case {
	return &domain.Case{
		Reference: ref,
		Category:  "Debt",
		State:     domain.StateAccepted,
		Client: domain.ClientDetails{
			FullName:    "John Example",
			DateOfBirth: time.Date(1975, 2, 28, 0, 0, 0, 0, time.UTC),
			Phone:       "01632 960 001",
		},
		ModifiedAt: time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC),
	}
}
