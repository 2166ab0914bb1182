// Package handler renders the caseworker screens. Handlers bind forms,
// call services, and translate failures into GOV.UK-style pages; no case
// rules live here.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/ctxkey"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/pkg/logger"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server/middleware"
)

// noticeMessages maps the notice query flag set on redirects to the banner
// text on the next page.
var noticeMessages = map[string]string{
	"details-saved":        "Client details saved.",
	"third-party-saved":    "Third party contact saved.",
	"third-party-restored": "Third party contact restored.",
	"support-needs-saved":  "Support needs saved.",
	"case-accepted":        "Case accepted.",
	"case-pending":         "Case marked as pending.",
	"case-closed":          "Case closed.",
	"case-completed":       "Case completed.",
	"case-reopened":        "Case reopened.",
}

func baseData(c *gin.Context) viewdata.Base {
	b := viewdata.Base{Caseworker: middleware.CaseworkerFrom(c)}
	if id, ok := c.Request.Context().Value(ctxkey.RequestID).(string); ok {
		b.RequestID = id
	}
	return b
}

// renderError maps a service failure onto the error page.
func renderError(c *gin.Context, err error) {
	data := viewdata.Error{Base: baseData(c)}

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, caseapi.ErrNotFound):
		status = http.StatusNotFound
		data.Heading = "Case not found"
		data.Message = "The case may have been reassigned, or the reference may be wrong."
	default:
		data.Heading = "Sorry, there is a problem with the service"
		data.Message = "Try again in a few minutes."
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}

	c.HTML(status, "error", data)
	c.Abort()
}

// upstreamMessage extracts the message of an upstream rejection for reuse
// in a form error summary. Non-client errors return empty, meaning the
// error page is the right response instead.
func upstreamMessage(err error) string {
	if apiErr, ok := caseapi.AsAPIError(err); ok && apiErr.IsClientError() {
		return apiErr.Message
	}
	return ""
}
