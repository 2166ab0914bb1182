package forms

import (
	"strings"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// SupportNeedsForm is the client support needs edit page body.
type SupportNeedsForm struct {
	BSLWebcam          string `form:"bsl_webcam"`
	TextRelay          string `form:"text_relay"`
	Skype              string `form:"skype"`
	CallbackPreference string `form:"callback_preference"`
	Language           string `form:"language"`
	Notes              string `form:"notes"`
}

// FromDomain pre-fills the form from the current support needs.
func (f *SupportNeedsForm) FromDomain(sn domain.ClientSupportNeeds) {
	if sn.BSLWebcam {
		f.BSLWebcam = "on"
	}
	if sn.TextRelay {
		f.TextRelay = "on"
	}
	if sn.Skype {
		f.Skype = "on"
	}
	f.CallbackPreference = sn.CallbackPreference
	f.Language = sn.Language
	f.Notes = sn.Notes
}

// Validate checks the form and, when clean, returns the domain value.
func (f *SupportNeedsForm) Validate() (domain.ClientSupportNeeds, Errors) {
	var errs Errors

	f.CallbackPreference = strings.TrimSpace(f.CallbackPreference)
	switch f.CallbackPreference {
	case "", domain.ContactPreferenceCall, domain.ContactPreferenceCallback, domain.ContactPreferenceThirdParty:
	default:
		errs.add("callback_preference", "Select how the client wants to be contacted")
	}

	f.Notes = strings.TrimSpace(f.Notes)
	if len(f.Notes) > 4000 {
		errs.add("notes", "Notes must be 4000 characters or fewer")
	}

	if errs.Any() {
		return domain.ClientSupportNeeds{}, errs
	}

	return domain.ClientSupportNeeds{
		BSLWebcam:          checked(f.BSLWebcam),
		TextRelay:          checked(f.TextRelay),
		Skype:              checked(f.Skype),
		CallbackPreference: f.CallbackPreference,
		Language:           strings.TrimSpace(f.Language),
		Notes:              f.Notes,
	}, nil
}
