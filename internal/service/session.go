package service

import (
	"context"
	"errors"
	"time"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// ErrSessionNotFound means the session record has expired or never existed.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record behind a caseworker's cookie. Besides
// identity it carries small bits of UI state, currently the third-party
// undo payload.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`

	// RemovedThirdParty holds the contact most recently soft-deleted from
	// RemovedThirdPartyCase, so the caseworker can undo. Cleared on undo or
	// on the next third-party edit.
	RemovedThirdParty     *domain.ThirdParty `json:"removed_third_party,omitempty"`
	RemovedThirdPartyCase string             `json:"removed_third_party_case,omitempty"`
}

// SessionStore persists sessions for their TTL. Reads refresh the TTL so a
// session stays alive while the caseworker keeps working.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
