// Package viewdata defines the data each template renders. One struct per
// page keeps the handler-to-template contract explicit.
package viewdata

import (
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
)

// Base carries what the layout needs on every page.
type Base struct {
	Caseworker *domain.Caseworker
	RequestID  string
}

// Login is the sign-in page.
type Login struct {
	Base
	Form   forms.LoginForm
	Errors forms.Errors
	Next   string
}

// CaseList is the case list page with search and pagination state.
type CaseList struct {
	Base
	Cases      []domain.Case
	Search     string
	State      string
	States     []string
	Page       int
	TotalPages int
	Count      int
}

// CaseDetail is the case detail page.
type CaseDetail struct {
	Base
	Case              *domain.Case
	RemovedThirdParty *domain.ThirdParty
	Notice            string
	UpstreamError     string
}

// ClientDetailsForm is the personal details edit page.
type ClientDetailsForm struct {
	Base
	CaseRef string
	Form    forms.ClientDetailsForm
	Errors  forms.Errors
}

// ThirdPartyForm is the third party contact edit page.
type ThirdPartyForm struct {
	Base
	CaseRef       string
	Form          forms.ThirdPartyForm
	Errors        forms.Errors
	Relationships []string
}

// SupportNeedsForm is the support needs edit page.
type SupportNeedsForm struct {
	Base
	CaseRef string
	Form    forms.SupportNeedsForm
	Errors  forms.Errors
}

// CloseCase is the close case page with its outcome code options.
type CloseCase struct {
	Base
	CaseRef string
	Form    forms.CloseCaseForm
	Errors  forms.Errors
	Codes   []domain.OutcomeCode
}

// Feedback is the feedback page.
type Feedback struct {
	Base
	Form   forms.FeedbackForm
	Errors forms.Errors
	Sent   bool
}

// Error is the generic error page.
type Error struct {
	Base
	Heading string
	Message string
}
