package handler

import (
	"github.com/google/wire"
)

// Handlers groups every page handler for the router.
type Handlers struct {
	Auth          *AuthHandler
	Cases         *CaseHandler
	ClientDetails *ClientDetailsHandler
	ThirdParty    *ThirdPartyHandler
	SupportNeeds  *SupportNeedsHandler
	Transitions   *TransitionHandler
	Feedback      *FeedbackHandler
}

// ProviderSet is the Wire provider set for all handlers.
var ProviderSet = wire.NewSet(
	NewAuthHandler,
	NewCaseHandler,
	NewClientDetailsHandler,
	NewThirdPartyHandler,
	NewSupportNeedsHandler,
	NewTransitionHandler,
	NewFeedbackHandler,

	wire.Struct(new(Handlers), "*"),
)
