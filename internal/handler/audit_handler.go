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

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit")
	audit.Use(middleware.RequirePermission(permission.ModuleAdmin, permission.ActionView))
	{
		audit.GET("", h.ListAuditEntries)
	}
}

// ListAuditEntries returns audit entries newest first, paginated
func (h *AuditHandler) ListAuditEntries(c *gin.Context) {
	p := pagination.Parse(c)

	entries, total, err := h.auditService.List(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated{
		Items: entries,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}
