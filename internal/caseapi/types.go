package caseapi

import (
	"time"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
)

// Wire shapes mirror the Civil Case API's snake_case JSON. Dates travel as
// "2006-01-02" strings; timestamps as RFC 3339. Mapping to the domain types
// is field-by-field with no behaviour of its own.

const wireDateFormat = "2006-01-02"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type caseworkerDTO struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type caseListDTO struct {
	Count    int       `json:"count"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Results  []caseDTO `json:"results"`
}

type caseDTO struct {
	Reference             string `json:"reference"`
	ProviderCaseReference string `json:"provider_case_reference"`
	Category              string `json:"category"`
	MatterType            string `json:"matter_type"`
	State                 string `json:"state"`
	OutcomeCode           string `json:"outcome_code"`
	Source                string `json:"source"`
	Notes                 string `json:"notes"`
	CreatedAt             string `json:"created_at"`
	ModifiedAt            string `json:"modified_at"`
	RequiresActionAt      string `json:"requires_action_at"`

	PersonalDetails *personalDetailsDTO `json:"personal_details"`
	ThirdParty      *thirdPartyDTO      `json:"third_party"`
	SupportNeeds    *supportNeedsDTO    `json:"support_needs"`
}

type personalDetailsDTO struct {
	Title          string `json:"title"`
	FullName       string `json:"full_name"`
	SurnameAtBirth string `json:"surname_at_birth,omitempty"`
	// Pointer, never omitted: the API merges PATCH payloads field by
	// field, so clearing the date must arrive as an explicit null.
	DateOfBirth *string `json:"date_of_birth"`

	HomePhone     string `json:"home_phone"`
	MobilePhone   string `json:"mobile_phone"`
	Email         string `json:"email"`
	SafeToCall    bool   `json:"safe_to_call"`
	SafeToEmail   bool   `json:"safe_to_email"`
	ContactMethod string `json:"contact_method,omitempty"`

	Street   string `json:"street"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

type thirdPartyDTO struct {
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	SafeToCall      bool   `json:"safe_to_call"`
	Relationship    string `json:"personal_relationship"`
	Passphrase      string `json:"pass_phrase,omitempty"`
	PassphraseSetUp bool   `json:"pass_phrase_set_up"`
	Spoke           bool   `json:"spoke_to"`
	NoContactReason string `json:"no_contact_reason,omitempty"`
}

type supportNeedsDTO struct {
	BSLWebcam          bool   `json:"bsl_webcam"`
	TextRelay          bool   `json:"text_relay"`
	Skype              bool   `json:"skype_webcam"`
	CallbackPreference string `json:"callback_preference,omitempty"`
	Language           string `json:"language,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

type outcomeCodeDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type closeCaseRequest struct {
	OutcomeCode string `json:"outcome_code"`
}

type feedbackRequest struct {
	CaseReference string `json:"case_reference,omitempty"`
	Issue         string `json:"issue"`
	Comment       string `json:"comment"`
}

// SearchQuery narrows and pages the case list.
type SearchQuery struct {
	Search   string
	State    string
	Page     int
	PageSize int
}

// CaseList is one page of search results.
type CaseList struct {
	Cases    []domain.Case
	Count    int
	Page     int
	PageSize int
}

// TotalPages derives the page count from Count and PageSize.
func (l CaseList) TotalPages() int {
	if l.PageSize <= 0 {
		return 0
	}
	return (l.Count + l.PageSize - 1) / l.PageSize
}

func (d caseDTO) toDomain() domain.Case {
	c := domain.Case{
		Reference:         d.Reference,
		ProviderReference: d.ProviderCaseReference,
		Category:          d.Category,
		MatterType:        d.MatterType,
		State:             d.State,
		OutcomeCode:       d.OutcomeCode,
		Source:            d.Source,
		Notes:             d.Notes,
		CreatedAt:         parseWireTime(d.CreatedAt),
		ModifiedAt:        parseWireTime(d.ModifiedAt),
		RequiresActionAt:  parseWireTime(d.RequiresActionAt),
	}
	if d.PersonalDetails != nil {
		c.Client = d.PersonalDetails.toDomain()
	}
	if d.ThirdParty != nil {
		tp := d.ThirdParty.toDomain()
		c.ThirdParty = &tp
	}
	if d.SupportNeeds != nil {
		sn := d.SupportNeeds.toDomain()
		c.SupportNeeds = &sn
	}
	return c
}

func (d personalDetailsDTO) toDomain() domain.ClientDetails {
	dob := ""
	if d.DateOfBirth != nil {
		dob = *d.DateOfBirth
	}
	return domain.ClientDetails{
		Title:          d.Title,
		FullName:       d.FullName,
		SurnameAtBirth: d.SurnameAtBirth,
		DateOfBirth:    parseWireDate(dob),
		Phone:          d.HomePhone,
		MobilePhone:    d.MobilePhone,
		Email:          d.Email,
		SafeToCall:     d.SafeToCall,
		SafeToEmail:    d.SafeToEmail,
		ContactMethod:  d.ContactMethod,
		Address: domain.Address{
			Street:   d.Street,
			City:     d.City,
			Postcode: d.Postcode,
		},
	}
}

func personalDetailsFromDomain(c domain.ClientDetails) personalDetailsDTO {
	dto := personalDetailsDTO{
		Title:          c.Title,
		FullName:       c.FullName,
		SurnameAtBirth: c.SurnameAtBirth,
		HomePhone:      c.Phone,
		MobilePhone:    c.MobilePhone,
		Email:          c.Email,
		SafeToCall:     c.SafeToCall,
		SafeToEmail:    c.SafeToEmail,
		ContactMethod:  c.ContactMethod,
		Street:         c.Address.Street,
		City:           c.Address.City,
		Postcode:       c.Address.Postcode,
	}
	if !c.DateOfBirth.IsZero() {
		s := c.DateOfBirth.Format(wireDateFormat)
		dto.DateOfBirth = &s
	}
	return dto
}

func (d thirdPartyDTO) toDomain() domain.ThirdParty {
	return domain.ThirdParty{
		FullName:        d.FullName,
		Phone:           d.Phone,
		SafeToCall:      d.SafeToCall,
		Relationship:    d.Relationship,
		Passphrase:      d.Passphrase,
		PassphraseSetUp: d.PassphraseSetUp,
		Spoke:           d.Spoke,
		NoContactReason: d.NoContactReason,
	}
}

func thirdPartyFromDomain(tp domain.ThirdParty) thirdPartyDTO {
	return thirdPartyDTO{
		FullName:        tp.FullName,
		Phone:           tp.Phone,
		SafeToCall:      tp.SafeToCall,
		Relationship:    tp.Relationship,
		Passphrase:      tp.Passphrase,
		PassphraseSetUp: tp.PassphraseSetUp,
		Spoke:           tp.Spoke,
		NoContactReason: tp.NoContactReason,
	}
}

func (d supportNeedsDTO) toDomain() domain.ClientSupportNeeds {
	return domain.ClientSupportNeeds{
		BSLWebcam:          d.BSLWebcam,
		TextRelay:          d.TextRelay,
		Skype:              d.Skype,
		CallbackPreference: d.CallbackPreference,
		Language:           d.Language,
		Notes:              d.Notes,
	}
}

func supportNeedsFromDomain(sn domain.ClientSupportNeeds) supportNeedsDTO {
	return supportNeedsDTO{
		BSLWebcam:          sn.BSLWebcam,
		TextRelay:          sn.TextRelay,
		Skype:              sn.Skype,
		CallbackPreference: sn.CallbackPreference,
		Language:           sn.Language,
		Notes:              sn.Notes,
	}
}

func parseWireDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(wireDateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseWireTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
