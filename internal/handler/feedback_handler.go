package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// FeedbackHandler serves the caseworker feedback page.
type FeedbackHandler struct {
	cases *service.CaseService
}

func NewFeedbackHandler(cases *service.CaseService) *FeedbackHandler {
	return &FeedbackHandler{cases: cases}
}

// Form renders the feedback page. GET /feedback
func (h *FeedbackHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "feedback", viewdata.Feedback{
		Base: baseData(c),
		Form: forms.FeedbackForm{CaseReference: c.Query("case")},
	})
}

// Submit sends the feedback upstream. POST /feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var form forms.FeedbackForm
	_ = c.ShouldBind(&form)

	render := func(errs forms.Errors, sent bool) {
		data := viewdata.Feedback{Base: baseData(c), Errors: errs, Sent: sent}
		if !sent {
			data.Form = form
		}
		c.HTML(http.StatusOK, "feedback", data)
	}

	fb, errs := form.Validate()
	if errs.Any() {
		render(errs, false)
		return
	}

	if err := h.cases.SubmitFeedback(c.Request.Context(), fb); err != nil {
		if msg := upstreamMessage(err); msg != "" {
			render(forms.Errors{{Field: "comment", Message: msg}}, false)
			return
		}
		renderError(c, err)
		return
	}

	render(nil, true)
}
