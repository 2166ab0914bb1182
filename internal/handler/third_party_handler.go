package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server/middleware"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// ThirdPartyHandler serves the third party contact pages, including the
// soft delete and its undo.
type ThirdPartyHandler struct {
	cases *service.CaseService
}

func NewThirdPartyHandler(cases *service.CaseService) *ThirdPartyHandler {
	return &ThirdPartyHandler{cases: cases}
}

// Edit renders the form, pre-filled when a contact exists.
// GET /cases/:ref/third-party
func (h *ThirdPartyHandler) Edit(c *gin.Context) {
	ref := c.Param("ref")

	kase, err := h.cases.Get(c.Request.Context(), ref)
	if err != nil {
		renderError(c, err)
		return
	}

	var form forms.ThirdPartyForm
	if kase.HasThirdParty() {
		form.FromDomain(*kase.ThirdParty)
	}

	c.HTML(http.StatusOK, "edit_third_party", viewdata.ThirdPartyForm{
		Base:          baseData(c),
		CaseRef:       ref,
		Form:          form,
		Relationships: domain.ThirdPartyRelationships,
	})
}

// Update saves the contact. POST /cases/:ref/third-party
func (h *ThirdPartyHandler) Update(c *gin.Context) {
	ref := c.Param("ref")

	var form forms.ThirdPartyForm
	_ = c.ShouldBind(&form)

	render := func(errs forms.Errors) {
		c.HTML(http.StatusOK, "edit_third_party", viewdata.ThirdPartyForm{
			Base:          baseData(c),
			CaseRef:       ref,
			Form:          form,
			Errors:        errs,
			Relationships: domain.ThirdPartyRelationships,
		})
	}

	tp, errs := form.Validate()
	if errs.Any() {
		render(errs)
		return
	}

	sess := middleware.SessionFrom(c)
	if err := h.cases.UpdateThirdParty(c.Request.Context(), sess, ref, tp); err != nil {
		if msg := upstreamMessage(err); msg != "" {
			render(forms.Errors{{Field: "full_name", Message: msg}})
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref+"?notice=third-party-saved")
}

// Remove soft-deletes the contact; the detail page then offers undo.
// POST /cases/:ref/third-party/delete
func (h *ThirdPartyHandler) Remove(c *gin.Context) {
	ref := c.Param("ref")

	sess := middleware.SessionFrom(c)
	err := h.cases.RemoveThirdParty(c.Request.Context(), sess, ref)
	if err != nil && !errors.Is(err, service.ErrNothingToUndo) {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref)
}

// Undo restores the contact removed earlier in this session.
// POST /cases/:ref/third-party/undo
func (h *ThirdPartyHandler) Undo(c *gin.Context) {
	ref := c.Param("ref")

	sess := middleware.SessionFrom(c)
	err := h.cases.UndoRemoveThirdParty(c.Request.Context(), sess, ref)
	if errors.Is(err, service.ErrNothingToUndo) {
		// Double click or stale tab; the page state already answers it.
		c.Redirect(http.StatusFound, "/cases/"+ref)
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref+"?notice=third-party-restored")
}
