package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// stubCaseAPI records calls and returns canned answers.
type stubCaseAPI struct {
	cases       map[string]*domain.Case
	caseworker  *domain.Caseworker
	loginErr    error
	callErr     error
	transitions []string
	removed     []string
	updatedTP   []domain.ThirdParty
	feedback    []domain.Feedback
}

func newStubCaseAPI() *stubCaseAPI {
	return &stubCaseAPI{cases: map[string]*domain.Case{}}
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
	s.updatedTP = append(s.updatedTP, tp)
	cp := tp
	s.cases[ref].ThirdParty = &cp
	return nil
}

func (s *stubCaseAPI) RemoveThirdParty(ctx context.Context, ref string) error {
	if s.callErr != nil {
		return s.callErr
	}
	s.removed = append(s.removed, ref)
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

func (s *stubCaseAPI) AcceptCase(ctx context.Context, ref string) error   { return s.recordTransition("accept") }
func (s *stubCaseAPI) MarkPending(ctx context.Context, ref string) error  { return s.recordTransition("pending") }
func (s *stubCaseAPI) CompleteCase(ctx context.Context, ref string) error { return s.recordTransition("complete") }
func (s *stubCaseAPI) ReopenCase(ctx context.Context, ref string) error   { return s.recordTransition("reopen") }

func (s *stubCaseAPI) CloseCase(ctx context.Context, ref, outcomeCode string) error {
	if s.callErr != nil {
		return s.callErr
	}
	s.transitions = append(s.transitions, "close:"+outcomeCode)
	return nil
}

func (s *stubCaseAPI) recordTransition(event string) error {
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
	return []domain.OutcomeCode{{Code: "CLSP", Description: "Closed, speaking to provider"}}, nil
}

func (s *stubCaseAPI) SubmitFeedback(ctx context.Context, fb domain.Feedback) error {
	if s.callErr != nil {
		return s.callErr
	}
	s.feedback = append(s.feedback, fb)
	return nil
}

// memorySessionStore is an in-memory SessionStore for service tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]Session{}}
}

func (m *memorySessionStore) Create(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memorySessionStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := s
	return &cp, nil
}

func (m *memorySessionStore) Update(ctx context.Context, s *Session) error {
	return m.Create(ctx, s)
}

func (m *memorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func caseWithThirdParty(ref string) *domain.Case {
	return &domain.Case{
		Reference: ref,
		State:     domain.StateAccepted,
		Client:    domain.ClientDetails{FullName: "John Example"},
		ThirdParty: &domain.ThirdParty{
			FullName:     "Mary Helper",
			Phone:        "07700900001",
			Relationship: domain.RelationshipFamily,
		},
	}
}

func TestRemoveThirdParty(t *testing.T) {
	ctx := context.Background()

	t.Run("soft_delete_keeps_undo_payload_on_session", func(t *testing.T) {
		api := newStubCaseAPI()
		api.cases["AB-1"] = caseWithThirdParty("AB-1")
		store := newMemorySessionStore()
		svc := NewCaseService(api, store)

		sess := &Session{ID: "sess-1", Username: "case.worker"}
		require.NoError(t, store.Create(ctx, sess))

		require.NoError(t, svc.RemoveThirdParty(ctx, sess, "AB-1"))

		assert.Equal(t, []string{"AB-1"}, api.removed)
		require.NotNil(t, svc.PendingUndo(sess, "AB-1"))
		assert.Equal(t, "Mary Helper", svc.PendingUndo(sess, "AB-1").FullName)

		// The payload survives a session round trip.
		reloaded, err := store.Get(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, reloaded.RemovedThirdParty)
	})

	t.Run("remove_without_third_party_is_nothing_to_undo", func(t *testing.T) {
		api := newStubCaseAPI()
		kase := caseWithThirdParty("AB-1")
		kase.ThirdParty = nil
		api.cases["AB-1"] = kase
		svc := NewCaseService(api, newMemorySessionStore())

		err := svc.RemoveThirdParty(ctx, &Session{ID: "sess-1"}, "AB-1")
		assert.ErrorIs(t, err, ErrNothingToUndo)
		assert.Empty(t, api.removed)
	})

	t.Run("undo_restores_contact_and_clears_payload", func(t *testing.T) {
		api := newStubCaseAPI()
		api.cases["AB-1"] = caseWithThirdParty("AB-1")
		store := newMemorySessionStore()
		svc := NewCaseService(api, store)

		sess := &Session{ID: "sess-1"}
		require.NoError(t, store.Create(ctx, sess))
		require.NoError(t, svc.RemoveThirdParty(ctx, sess, "AB-1"))

		require.NoError(t, svc.UndoRemoveThirdParty(ctx, sess, "AB-1"))

		require.Len(t, api.updatedTP, 1)
		assert.Equal(t, "Mary Helper", api.updatedTP[0].FullName)
		assert.Nil(t, svc.PendingUndo(sess, "AB-1"))
	})

	t.Run("undo_for_wrong_case_is_rejected", func(t *testing.T) {
		api := newStubCaseAPI()
		api.cases["AB-1"] = caseWithThirdParty("AB-1")
		store := newMemorySessionStore()
		svc := NewCaseService(api, store)

		sess := &Session{ID: "sess-1"}
		require.NoError(t, store.Create(ctx, sess))
		require.NoError(t, svc.RemoveThirdParty(ctx, sess, "AB-1"))

		err := svc.UndoRemoveThirdParty(ctx, sess, "XY-9")
		assert.ErrorIs(t, err, ErrNothingToUndo)
	})

	t.Run("editing_third_party_clears_stale_undo_payload", func(t *testing.T) {
		api := newStubCaseAPI()
		api.cases["AB-1"] = caseWithThirdParty("AB-1")
		store := newMemorySessionStore()
		svc := NewCaseService(api, store)

		sess := &Session{ID: "sess-1"}
		require.NoError(t, store.Create(ctx, sess))
		require.NoError(t, svc.RemoveThirdParty(ctx, sess, "AB-1"))

		require.NoError(t, svc.UpdateThirdParty(ctx, sess, "AB-1", domain.ThirdParty{FullName: "New Contact"}))

		assert.Nil(t, svc.PendingUndo(sess, "AB-1"))
	})
}

func TestTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards_known_events", func(t *testing.T) {
		api := newStubCaseAPI()
		svc := NewCaseService(api, newMemorySessionStore())

		for _, event := range []string{"accept", "pending", "complete", "reopen"} {
			require.NoError(t, svc.Transition(ctx, "AB-1", event))
		}
		assert.Equal(t, []string{"accept", "pending", "complete", "reopen"}, api.transitions)
	})

	t.Run("rejects_unknown_event", func(t *testing.T) {
		svc := NewCaseService(newStubCaseAPI(), newMemorySessionStore())
		assert.Error(t, svc.Transition(ctx, "AB-1", "archive"))
	})

	t.Run("propagates_upstream_rejection", func(t *testing.T) {
		api := newStubCaseAPI()
		api.callErr = &caseapi.APIError{StatusCode: 400, Message: "case already accepted"}
		svc := NewCaseService(api, newMemorySessionStore())

		err := svc.Transition(ctx, "AB-1", "accept")
		apiErr, ok := caseapi.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "case already accepted", apiErr.Message)
	})

	t.Run("close_passes_outcome_code", func(t *testing.T) {
		api := newStubCaseAPI()
		svc := NewCaseService(api, newMemorySessionStore())

		require.NoError(t, svc.Close(ctx, "AB-1", "CLSP"))
		assert.Equal(t, []string{"close:CLSP"}, api.transitions)
	})
}

func TestSubmitFeedback(t *testing.T) {
	api := newStubCaseAPI()
	svc := NewCaseService(api, newMemorySessionStore())

	require.NoError(t, svc.SubmitFeedback(context.Background(), domain.Feedback{Issue: "other", Comment: "ok"}))
	require.Len(t, api.feedback, 1)
}

var errUpstream = errors.New("upstream down")

func TestSearchPropagatesErrors(t *testing.T) {
	api := newStubCaseAPI()
	api.callErr = errUpstream
	svc := NewCaseService(api, newMemorySessionStore())

	_, err := svc.Search(context.Background(), caseapi.SearchQuery{})
	assert.ErrorIs(t, err, errUpstream)
}
