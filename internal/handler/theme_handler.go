package handler

import (
	"net/http"
	"strings"

	"backoffice/internal/middleware"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	themeService service.ThemeService
}

func NewThemeHandler(themeService service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

func (h *ThemeHandler) RegisterRoutes(router *gin.RouterGroup) {
	themes := router.Group("/api/themes")
	{
		themes.GET("", middleware.RequirePermission(permission.ModuleThemes, permission.ActionView), h.ListThemes)
		themes.POST("", middleware.RequirePermission(permission.ModuleThemes, permission.ActionCreate), h.CreateTheme)
		themes.PUT("/:id", middleware.RequirePermission(permission.ModuleThemes, permission.ActionEdit), h.UpdateTheme)
		themes.DELETE("/:id", middleware.RequirePermission(permission.ModuleThemes, permission.ActionDelete), h.DeleteTheme)
		themes.POST("/:id/activate", middleware.RequirePermission(permission.ModuleThemes, permission.ActionEdit), h.ActivateTheme)
	}
}

// ListThemes returns all color schemes
func (h *ThemeHandler) ListThemes(c *gin.Context) {
	themes, err := h.themeService.ListThemes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, themes))
}

// CreateTheme stores a new color scheme (inactive until activated)
func (h *ThemeHandler) CreateTheme(c *gin.Context) {
	var req service.SaveThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	theme, err := h.themeService.CreateTheme(req, currentActor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, theme))
}

// UpdateTheme replaces a theme's name and colors
func (h *ThemeHandler) UpdateTheme(c *gin.Context) {
	var req service.SaveThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	theme, err := h.themeService.UpdateTheme(c.Param("id"), req, currentActor(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, theme))
}

// DeleteTheme removes an inactive theme
func (h *ThemeHandler) DeleteTheme(c *gin.Context) {
	if err := h.themeService.DeleteTheme(c.Param("id"), currentActor(c)); err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Theme deleted successfully"}))
}

// ActivateTheme marks one theme active, deactivating the rest
func (h *ThemeHandler) ActivateTheme(c *gin.Context) {
	theme, err := h.themeService.ActivateTheme(c.Param("id"), currentActor(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, theme))
}
