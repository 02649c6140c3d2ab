package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type LimitationHandler struct {
	limitationService service.LimitationService
}

func NewLimitationHandler(limitationService service.LimitationService) *LimitationHandler {
	return &LimitationHandler{limitationService: limitationService}
}

func (h *LimitationHandler) RegisterRoutes(router *gin.RouterGroup) {
	limitations := router.Group("/api/limitations")
	{
		limitations.GET("", middleware.RequirePermission(permission.ModuleLimitations, permission.ActionView), h.ListLimitations)
		limitations.GET("/:id", middleware.RequirePermission(permission.ModuleLimitations, permission.ActionView), h.GetLimitation)
		limitations.POST("", middleware.RequirePermission(permission.ModuleLimitations, permission.ActionCreate), h.CreateLimitation)
		limitations.PUT("/:id", middleware.RequirePermission(permission.ModuleLimitations, permission.ActionEdit), h.UpdateLimitation)
		limitations.DELETE("/:id", middleware.RequirePermission(permission.ModuleLimitations, permission.ActionDelete), h.DeleteLimitation)
	}
}

// ListLimitations returns the statute-of-limitations catalog
func (h *LimitationHandler) ListLimitations(c *gin.Context) {
	limitations, err := h.limitationService.ListLimitations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, limitations))
}

// GetLimitation returns a single entry by ID
func (h *LimitationHandler) GetLimitation(c *gin.Context) {
	l, err := h.limitationService.GetLimitation(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, l))
}

// CreateLimitation creates a new catalog entry
func (h *LimitationHandler) CreateLimitation(c *gin.Context) {
	var req service.CreateLimitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	l, err := h.limitationService.CreateLimitation(req, currentActor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, l))
}

// UpdateLimitation replaces the fields of an existing entry
func (h *LimitationHandler) UpdateLimitation(c *gin.Context) {
	var req service.UpdateLimitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	l, err := h.limitationService.UpdateLimitation(c.Param("id"), req, currentActor(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, l))
}

// DeleteLimitation removes an entry
func (h *LimitationHandler) DeleteLimitation(c *gin.Context) {
	if err := h.limitationService.DeleteLimitation(c.Param("id"), currentActor(c)); err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Limitation deleted successfully"}))
}
