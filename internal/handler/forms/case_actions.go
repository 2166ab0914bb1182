package forms

import (
	"strings"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// CloseCaseForm is the close case page body.
type CloseCaseForm struct {
	OutcomeCode string `form:"outcome_code"`
}

// Validate checks the chosen code against the list fetched for the form.
func (f *CloseCaseForm) Validate(codes []domain.OutcomeCode) Errors {
	var errs Errors

	f.OutcomeCode = strings.TrimSpace(f.OutcomeCode)
	if f.OutcomeCode == "" {
		errs.add("outcome_code", "Select an outcome code")
		return errs
	}
	for _, c := range codes {
		if c.Code == f.OutcomeCode {
			return nil
		}
	}
	errs.add("outcome_code", "Select an outcome code from the list")
	return errs
}

// FeedbackForm is the feedback page body.
type FeedbackForm struct {
	CaseReference string `form:"case_reference"`
	Issue         string `form:"issue"`
	Comment       string `form:"comment"`
}

func (f *FeedbackForm) Validate() (domain.Feedback, Errors) {
	var errs Errors

	f.Issue = strings.TrimSpace(f.Issue)
	if f.Issue == "" {
		errs.add("issue", "Select what the feedback is about")
	}

	f.Comment = strings.TrimSpace(f.Comment)
	if f.Comment == "" {
		errs.add("comment", "Enter your feedback")
	} else if len(f.Comment) > 4000 {
		errs.add("comment", "Feedback must be 4000 characters or fewer")
	}

	if errs.Any() {
		return domain.Feedback{}, errs
	}

	return domain.Feedback{
		CaseReference: strings.TrimSpace(f.CaseReference),
		Issue:         f.Issue,
		Comment:       f.Comment,
	}, nil
}
