package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ministryofjustice/laa-civil-case-ui/internal/caseapi"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/domain"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/handler/viewdata"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/server/middleware"
	"github.com/ministryofjustice/laa-civil-case-ui/internal/service"
)

const casePageSize = 20

// CaseHandler serves the case list and case detail pages.
type CaseHandler struct {
	cases *service.CaseService
}

func NewCaseHandler(cases *service.CaseService) *CaseHandler {
	return &CaseHandler{cases: cases}
}

// List renders the case list with search and pagination. GET /cases
func (h *CaseHandler) List(c *gin.Context) {
	search := c.Query("search")
	state := c.Query("state")

	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	list, err := h.cases.Search(c.Request.Context(), caseapi.SearchQuery{
		Search:   search,
		State:    state,
		Page:     page,
		PageSize: casePageSize,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "case_list", viewdata.CaseList{
		Base:       baseData(c),
		Cases:      list.Cases,
		Search:     search,
		State:      state,
		States:     domain.CaseStates,
		Page:       list.Page,
		TotalPages: list.TotalPages(),
		Count:      list.Count,
	})
}

// Detail renders one case. GET /cases/:ref
func (h *CaseHandler) Detail(c *gin.Context) {
	ref := c.Param("ref")

	kase, err := h.cases.Get(c.Request.Context(), ref)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "case_detail", viewdata.CaseDetail{
		Base:              baseData(c),
		Case:              kase,
		RemovedThirdParty: h.cases.PendingUndo(middleware.SessionFrom(c), ref),
		Notice:            noticeMessages[c.Query("notice")],
	})
}
