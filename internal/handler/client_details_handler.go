package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/forms"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

// ClientDetailsHandler serves the personal details edit page.
type ClientDetailsHandler struct {
	cases *service.CaseService
}

func NewClientDetailsHandler(cases *service.CaseService) *ClientDetailsHandler {
	return &ClientDetailsHandler{cases: cases}
}

// Edit renders the pre-filled form. GET /cases/:ref/client-details
func (h *ClientDetailsHandler) Edit(c *gin.Context) {
	ref := c.Param("ref")

	kase, err := h.cases.Get(c.Request.Context(), ref)
	if err != nil {
		renderError(c, err)
		return
	}

	var form forms.ClientDetailsForm
	form.FromDomain(kase.Client)

	c.HTML(http.StatusOK, "edit_client_details", viewdata.ClientDetailsForm{
		Base:    baseData(c),
		CaseRef: ref,
		Form:    form,
	})
}

// Update saves the form. POST /cases/:ref/client-details
func (h *ClientDetailsHandler) Update(c *gin.Context) {
	ref := c.Param("ref")

	var form forms.ClientDetailsForm
	_ = c.ShouldBind(&form)

	render := func(errs forms.Errors) {
		c.HTML(http.StatusOK, "edit_client_details", viewdata.ClientDetailsForm{
			Base:    baseData(c),
			CaseRef: ref,
			Form:    form,
			Errors:  errs,
		})
	}

	details, errs := form.Validate(time.Now())
	if errs.Any() {
		render(errs)
		return
	}

	if err := h.cases.UpdateClientDetails(c.Request.Context(), ref, details); err != nil {
		if msg := upstreamMessage(err); msg != "" {
			render(forms.Errors{{Field: "full_name", Message: msg}})
			return
		}
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cases/"+ref+"?notice=details-saved")
}
