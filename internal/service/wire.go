package service

import (
	"github.com/google/wire"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
)

// ProviderSet is the Wire provider set for services and the upstream client.
var ProviderSet = wire.NewSet(
	caseapi.New,
	wire.Bind(new(CaseAPI), new(*caseapi.Client)),

	NewAuthService,
	NewCaseService,
)
