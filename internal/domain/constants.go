package domain

// Case state constants.
//
// State ownership and transition validity live entirely in the Civil Case
// API; these values exist for display labels and list filtering only.
const (
	StateNew       = "New"
	StateAccepted  = "Accepted"
	StatePending   = "Pending"
	StateClosed    = "Closed"
	StateCompleted = "Completed"
)

// CaseStates lists the states offered by the case-list filter, in the order
// they appear in the UI.
var CaseStates = []string{
	StateNew,
	StateAccepted,
	StatePending,
	StateClosed,
	StateCompleted,
}

// StateLabels maps case states to the labels shown to caseworkers.
var StateLabels = map[string]string{
	StateNew:       "New",
	StateAccepted:  "Accepted",
	StatePending:   "Pending",
	StateClosed:    "Closed",
	StateCompleted: "Completed",
}

// Third party relationship values accepted by the Civil Case API.
const (
	RelationshipParent       = "PARENT_GUARDIAN"
	RelationshipFamily       = "FAMILY_FRIEND"
	RelationshipProfessional = "PROFESSIONAL"
	RelationshipLegalAdviser = "LEGAL_ADVISER"
	RelationshipOther        = "OTHER"
)

// ThirdPartyRelationships lists the relationship options for the third party
// form, in display order.
var ThirdPartyRelationships = []string{
	RelationshipParent,
	RelationshipFamily,
	RelationshipProfessional,
	RelationshipLegalAdviser,
	RelationshipOther,
}

// RelationshipLabels maps relationship values to form labels.
var RelationshipLabels = map[string]string{
	RelationshipParent:       "Parent or guardian",
	RelationshipFamily:       "Family member or friend",
	RelationshipProfessional: "Professional",
	RelationshipLegalAdviser: "Legal adviser",
	RelationshipOther:        "Other",
}

// Callback preference values for client support needs.
const (
	ContactPreferenceCall       = "CALL"
	ContactPreferenceCallback   = "CALLBACK"
	ContactPreferenceThirdParty = "THIRDPARTY"
)
