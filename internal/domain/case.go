// Package domain defines the flat case, client, and caseworker types passed
// between the Civil Case API client, services, and handlers. None of these
// carry lifecycle of their own: every value mirrors a record owned by the
// external API and lives only for the request that fetched it.
package domain

import "time"

// Case is a legal-aid case as held by the Civil Case API.
type Case struct {
	Reference         string
	ProviderReference string
	Category          string
	MatterType        string
	State             string
	OutcomeCode       string
	Source            string
	Notes             string
	CreatedAt         time.Time
	ModifiedAt        time.Time
	RequiresActionAt  time.Time

	Client       ClientDetails
	ThirdParty   *ThirdParty
	SupportNeeds *ClientSupportNeeds
}

// HasThirdParty reports whether the case has a third-party contact attached.
func (c Case) HasThirdParty() bool {
	return c.ThirdParty != nil && (c.ThirdParty.FullName != "" || c.ThirdParty.Phone != "")
}

// ClientDetails is the personal and contact information attached to a case.
type ClientDetails struct {
	Title          string
	FullName       string
	SurnameAtBirth string
	DateOfBirth    time.Time

	Phone         string
	MobilePhone   string
	Email         string
	SafeToCall    bool
	SafeToEmail   bool
	ContactMethod string

	Address Address
}

// Address is a postal address in the shape the Civil Case API stores it.
type Address struct {
	Street   string
	City     string
	Postcode string
}

// ThirdParty is an alternate contact permitted to discuss a case on the
// client's behalf.
type ThirdParty struct {
	FullName     string
	Phone        string
	SafeToCall   bool
	Relationship string
	// Passphrase is the agreed phrase used to verify the third party on the
	// phone; PassphraseSetUp records whether one was agreed at all.
	Passphrase      string
	PassphraseSetUp bool
	Spoke           bool
	NoContactReason string
}

// ClientSupportNeeds records the adaptations a client needs to use the
// service.
type ClientSupportNeeds struct {
	BSLWebcam          bool
	TextRelay          bool
	Skype              bool
	CallbackPreference string
	Language           string
	Notes              string
}

// Caseworker is the authenticated operator of this UI. Credentials are
// verified by the Civil Case API; nothing is stored locally beyond the
// session record.
type Caseworker struct {
	Username  string
	FullName  string
	SessionID string
}

// OutcomeCode is a closure outcome offered by the Civil Case API.
type OutcomeCode struct {
	Code        string
	Description string
}

// Feedback is a caseworker comment about a case or the service itself.
type Feedback struct {
	CaseReference string
	Issue         string
	Comment       string
}
