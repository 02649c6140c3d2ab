package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/pkg/pagination"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type CaseHandler struct {
	caseService service.CaseService
}

func NewCaseHandler(caseService service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

func (h *CaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	cases := router.Group("/api/cases")
	cases.Use(middleware.RequirePermission(permission.ModuleCases, permission.ActionView))
	{
		cases.GET("", h.ListCases)
		cases.GET("/stats", h.GetStats)
		cases.GET("/:id", h.GetCase)
	}

	indictments := router.Group("/api/indictments")
	indictments.Use(middleware.RequirePermission(permission.ModuleIndictments, permission.ActionView))
	{
		indictments.GET("", h.ListIndictments)
	}
}

// ListCases returns a paginated case list, optionally filtered by status
func (h *CaseHandler) ListCases(c *gin.Context) {
	p := pagination.Parse(c)

	cases, total, err := h.caseService.ListCases(p, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: cases,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// GetCase returns a single case by ID
func (h *CaseHandler) GetCase(c *gin.Context) {
	record, err := h.caseService.GetCase(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// GetStats returns case counts grouped by status
func (h *CaseHandler) GetStats(c *gin.Context) {
	stats, err := h.caseService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// ListIndictments returns a paginated indictment list
func (h *CaseHandler) ListIndictments(c *gin.Context) {
	p := pagination.Parse(c)

	indictments, total, err := h.caseService.ListIndictments(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: indictments,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}
