package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server/middleware"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// TransitionHandler serves the case state actions. The Civil Case API owns
// the state machine; a rejected transition re-renders the detail page with
// the upstream message.
type TransitionHandler struct {
	cases *service.CaseService
}

func NewTransitionHandler(cases *service.CaseService) *TransitionHandler {
	return &TransitionHandler{cases: cases}
}

// Accept handles POST /cases/:ref/accept.
func (h *TransitionHandler) Accept(c *gin.Context) { h.transition(c, "accept", "case-accepted") }

// Pending handles POST /cases/:ref/pending.
func (h *TransitionHandler) Pending(c *gin.Context) { h.transition(c, "pending", "case-pending") }

// Complete handles POST /cases/:ref/complete.
func (h *TransitionHandler) Complete(c *gin.Context) { h.transition(c, "complete", "case-completed") }

// Reopen handles POST /cases/:ref/reopen.
func (h *TransitionHandler) Reopen(c *gin.Context) { h.transition(c, "reopen", "case-reopened") }

func (h *TransitionHandler) transition(c *gin.Context, event, notice string) {
	ref := c.Param("ref")

	if err := h.cases.Transition(c.Request.Context(), ref, event); err != nil {
		if msg := upstreamMessage(err); msg != "" {
			h.renderDetailWithError(c, ref, msg)
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref+"?notice="+notice)
}

// CloseForm renders the outcome code selection. GET /cases/:ref/close
func (h *TransitionHandler) CloseForm(c *gin.Context) {
	ref := c.Param("ref")

	codes, err := h.cases.OutcomeCodes(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "close_case", viewdata.CloseCase{
		Base:    baseData(c),
		CaseRef: ref,
		Codes:   codes,
	})
}

// Close closes the case with the chosen outcome code. POST /cases/:ref/close
func (h *TransitionHandler) Close(c *gin.Context) {
	ref := c.Param("ref")

	var form forms.CloseCaseForm
	_ = c.ShouldBind(&form)

	codes, err := h.cases.OutcomeCodes(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}

	render := func(errs forms.Errors) {
		c.HTML(http.StatusOK, "close_case", viewdata.CloseCase{
			Base:    baseData(c),
			CaseRef: ref,
			Form:    form,
			Errors:  errs,
			Codes:   codes,
		})
	}

	if errs := form.Validate(codes); errs.Any() {
		render(errs)
		return
	}

	if err := h.cases.Close(c.Request.Context(), ref, form.OutcomeCode); err != nil {
		if msg := upstreamMessage(err); msg != "" {
			render(forms.Errors{{Field: "outcome_code", Message: msg}})
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref+"?notice=case-closed")
}

func (h *TransitionHandler) renderDetailWithError(c *gin.Context, ref, msg string) {
	kase, err := h.cases.Get(c.Request.Context(), ref)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "case_detail", viewdata.CaseDetail{
		Base:              baseData(c),
		Case:              kase,
		RemovedThirdParty: h.cases.PendingUndo(middleware.SessionFrom(c), ref),
		UpstreamError:     msg,
	})
}
