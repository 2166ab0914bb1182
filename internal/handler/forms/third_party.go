package forms

import (
	"strings"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// ThirdPartyForm is the third-party contact edit page body.
type ThirdPartyForm struct {
	FullName        string `form:"full_name"`
	Phone           string `form:"phone"`
	SafeToCall      string `form:"safe_to_call"`
	Relationship    string `form:"relationship"`
	Passphrase      string `form:"passphrase"`
	PassphraseSetUp string `form:"passphrase_set_up"`
	Spoke           string `form:"spoke"`
	NoContactReason string `form:"no_contact_reason"`
}

// FromDomain pre-fills the form from the current contact.
func (f *ThirdPartyForm) FromDomain(tp domain.ThirdParty) {
	f.FullName = tp.FullName
	f.Phone = tp.Phone
	if tp.SafeToCall {
		f.SafeToCall = "on"
	}
	f.Relationship = tp.Relationship
	f.Passphrase = tp.Passphrase
	if tp.PassphraseSetUp {
		f.PassphraseSetUp = "on"
	}
	if tp.Spoke {
		f.Spoke = "on"
	}
	f.NoContactReason = tp.NoContactReason
}

// Validate checks the form and, when clean, returns the domain contact.
func (f *ThirdPartyForm) Validate() (domain.ThirdParty, Errors) {
	var errs Errors

	f.FullName = strings.TrimSpace(f.FullName)
	if f.FullName == "" {
		errs.add("full_name", "Enter the contact's full name")
	}

	f.Phone = strings.TrimSpace(f.Phone)
	if f.Phone == "" {
		errs.add("phone", "Enter the contact's phone number")
	} else if !phonePattern.MatchString(f.Phone) {
		errs.add("phone", "Enter a phone number, like 01632 960 001")
	}

	f.Relationship = strings.TrimSpace(f.Relationship)
	if f.Relationship == "" {
		errs.add("relationship", "Select the contact's relationship to the client")
	} else if _, ok := domain.RelationshipLabels[f.Relationship]; !ok {
		errs.add("relationship", "Select a relationship from the list")
	}

	passphraseSetUp := checked(f.PassphraseSetUp)
	f.Passphrase = strings.TrimSpace(f.Passphrase)
	if passphraseSetUp && f.Passphrase == "" {
		errs.add("passphrase", "Enter the passphrase the contact agreed")
	}

	if errs.Any() {
		return domain.ThirdParty{}, errs
	}

	return domain.ThirdParty{
		FullName:        f.FullName,
		Phone:           f.Phone,
		SafeToCall:      checked(f.SafeToCall),
		Relationship:    f.Relationship,
		Passphrase:      f.Passphrase,
		PassphraseSetUp: passphraseSetUp,
		Spoke:           checked(f.Spoke),
		NoContactReason: strings.TrimSpace(f.NoContactReason),
	}, nil
}
