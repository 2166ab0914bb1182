package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// SupportNeedsHandler serves the client support needs edit page.
type SupportNeedsHandler struct {
	cases *service.CaseService
}

func NewSupportNeedsHandler(cases *service.CaseService) *SupportNeedsHandler {
	return &SupportNeedsHandler{cases: cases}
}

// Edit renders the pre-filled form. GET /cases/:ref/support-needs
func (h *SupportNeedsHandler) Edit(c *gin.Context) {
	ref := c.Param("ref")

	kase, err := h.cases.Get(c.Request.Context(), ref)
	if err != nil {
		renderError(c, err)
		return
	}

	var form forms.SupportNeedsForm
	if kase.SupportNeeds != nil {
		form.FromDomain(*kase.SupportNeeds)
	}

	c.HTML(http.StatusOK, "edit_support_needs", viewdata.SupportNeedsForm{
		Base:    baseData(c),
		CaseRef: ref,
		Form:    form,
	})
}

// Update saves the form. POST /cases/:ref/support-needs
func (h *SupportNeedsHandler) Update(c *gin.Context) {
	ref := c.Param("ref")

	var form forms.SupportNeedsForm
	_ = c.ShouldBind(&form)

	render := func(errs forms.Errors) {
		c.HTML(http.StatusOK, "edit_support_needs", viewdata.SupportNeedsForm{
			Base:    baseData(c),
			CaseRef: ref,
			Form:    form,
			Errors:  errs,
		})
	}

	sn, errs := form.Validate()
	if errs.Any() {
		render(errs)
		return
	}

	if err := h.cases.UpdateSupportNeeds(c.Request.Context(), ref, sn); err != nil {
		if msg := upstreamMessage(err); msg != "" {
			render(forms.Errors{{Field: "notes", Message: msg}})
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref+"?notice=support-needs-saved")
}
