// Package service orchestrates the Civil Case API client and the session
// store for the handlers. There is no business logic to own here: case
// rules live upstream, so services translate, sequence calls, and maintain
// session-held UI state.
package service

import (
	"context"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// CaseAPI is the slice of the Civil Case API client the services use.
// *caseapi.Client satisfies it; tests substitute a stub.
type CaseAPI interface {
	CheckCredentials(ctx context.Context, username, password string) (*domain.Caseworker, error)

	SearchCases(ctx context.Context, q caseapi.SearchQuery) (*caseapi.CaseList, error)
	GetCase(ctx context.Context, ref string) (*domain.Case, error)

	UpdateClientDetails(ctx context.Context, ref string, details domain.ClientDetails) error
	UpdateThirdParty(ctx context.Context, ref string, tp domain.ThirdParty) error
	RemoveThirdParty(ctx context.Context, ref string) error
	UpdateSupportNeeds(ctx context.Context, ref string, sn domain.ClientSupportNeeds) error

	AcceptCase(ctx context.Context, ref string) error
	MarkPending(ctx context.Context, ref string) error
	CloseCase(ctx context.Context, ref, outcomeCode string) error
	CompleteCase(ctx context.Context, ref string) error
	ReopenCase(ctx context.Context, ref string) error

	ListOutcomeCodes(ctx context.Context) ([]domain.OutcomeCode, error)
	SubmitFeedback(ctx context.Context, fb domain.Feedback) error
}
