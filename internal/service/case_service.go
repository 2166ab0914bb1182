package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
)

// ErrNothingToUndo means there is no soft-deleted third party on the
// session for this case.
var ErrNothingToUndo = errors.New("no removed third party to restore")

// CaseService fronts the Civil Case API for the case screens. The only
// state it touches locally is the session-held third-party undo payload;
// everything else is fetch, translate, forward.
type CaseService struct {
	api      CaseAPI
	sessions SessionStore
}

func NewCaseService(api CaseAPI, sessions SessionStore) *CaseService {
	return &CaseService{api: api, sessions: sessions}
}

// Search returns one page of the case list.
func (s *CaseService) Search(ctx context.Context, q caseapi.SearchQuery) (*caseapi.CaseList, error) {
	return s.api.SearchCases(ctx, q)
}

// Get fetches a single case.
func (s *CaseService) Get(ctx context.Context, ref string) (*domain.Case, error) {
	return s.api.GetCase(ctx, ref)
}

// UpdateClientDetails forwards edited personal details upstream.
func (s *CaseService) UpdateClientDetails(ctx context.Context, ref string, details domain.ClientDetails) error {
	return s.api.UpdateClientDetails(ctx, ref, details)
}

// UpdateThirdParty saves the third-party contact. Any pending undo payload
// on the session is stale once the caseworker edits again, so it is
// cleared.
func (s *CaseService) UpdateThirdParty(ctx context.Context, sess *Session, ref string, tp domain.ThirdParty) error {
	if err := s.api.UpdateThirdParty(ctx, ref, tp); err != nil {
		return err
	}
	if sess.RemovedThirdParty != nil {
		sess.RemovedThirdParty = nil
		sess.RemovedThirdPartyCase = ""
		if err := s.sessions.Update(ctx, sess); err != nil {
			logger.FromContext(ctx).Warn("failed to clear third party undo state", zap.Error(err))
		}
	}
	return nil
}

// RemoveThirdParty deletes the contact upstream but keeps a copy on the
// session so the caseworker can undo within this login.
func (s *CaseService) RemoveThirdParty(ctx context.Context, sess *Session, ref string) error {
	kase, err := s.api.GetCase(ctx, ref)
	if err != nil {
		return err
	}
	if kase.ThirdParty == nil {
		return ErrNothingToUndo
	}

	if err := s.api.RemoveThirdParty(ctx, ref); err != nil {
		return err
	}

	sess.RemovedThirdParty = kase.ThirdParty
	sess.RemovedThirdPartyCase = ref
	if err := s.sessions.Update(ctx, sess); err != nil {
		// The upstream delete already happened; losing the undo payload is
		// the lesser failure, so log and carry on.
		logger.FromContext(ctx).Warn("failed to store third party undo state", zap.Error(err))
	}
	return nil
}

// UndoRemoveThirdParty restores the soft-deleted contact held on the
// session for this case.
func (s *CaseService) UndoRemoveThirdParty(ctx context.Context, sess *Session, ref string) error {
	if sess.RemovedThirdParty == nil || sess.RemovedThirdPartyCase != ref {
		return ErrNothingToUndo
	}

	if err := s.api.UpdateThirdParty(ctx, ref, *sess.RemovedThirdParty); err != nil {
		return err
	}

	sess.RemovedThirdParty = nil
	sess.RemovedThirdPartyCase = ""
	if err := s.sessions.Update(ctx, sess); err != nil {
		return fmt.Errorf("clear undo state: %w", err)
	}
	return nil
}

// PendingUndo reports whether the session holds an undo payload for this
// case, for the banner on the case detail page.
func (s *CaseService) PendingUndo(sess *Session, ref string) *domain.ThirdParty {
	if sess == nil || sess.RemovedThirdParty == nil || sess.RemovedThirdPartyCase != ref {
		return nil
	}
	return sess.RemovedThirdParty
}

// UpdateSupportNeeds forwards edited support needs upstream.
func (s *CaseService) UpdateSupportNeeds(ctx context.Context, ref string, sn domain.ClientSupportNeeds) error {
	return s.api.UpdateSupportNeeds(ctx, ref, sn)
}

// Transition requests a state change. The external API owns the state
// machine; unknown events are a programming error here, everything else is
// forwarded verbatim.
func (s *CaseService) Transition(ctx context.Context, ref, event string) error {
	var err error
	switch event {
	case "accept":
		err = s.api.AcceptCase(ctx, ref)
	case "pending":
		err = s.api.MarkPending(ctx, ref)
	case "complete":
		err = s.api.CompleteCase(ctx, ref)
	case "reopen":
		err = s.api.ReopenCase(ctx, ref)
	default:
		return fmt.Errorf("unknown case event %q", event)
	}
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("case state transition",
		zap.String("case", ref),
		zap.String("event", event),
	)
	return nil
}

// Close closes the case with an outcome code.
func (s *CaseService) Close(ctx context.Context, ref, outcomeCode string) error {
	if err := s.api.CloseCase(ctx, ref, outcomeCode); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("case closed",
		zap.String("case", ref),
		zap.String("outcome_code", outcomeCode),
	)
	return nil
}

// OutcomeCodes lists the closure codes for the close form.
func (s *CaseService) OutcomeCodes(ctx context.Context) ([]domain.OutcomeCode, error) {
	return s.api.ListOutcomeCodes(ctx)
}

// SubmitFeedback forwards caseworker feedback upstream.
func (s *CaseService) SubmitFeedback(ctx context.Context, fb domain.Feedback) error {
	return s.api.SubmitFeedback(ctx, fb)
}
