package handler

import (
	"errors"
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncService service.SyncService
}

func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	sync := router.Group("/api/sync")
	{
		sync.GET("/status", middleware.RequirePermission(permission.ModuleAdmin, permission.ActionView), h.Status)
		sync.POST("/tables", middleware.RequirePermission(permission.ModuleAdmin, permission.ActionEdit), h.EnsureTables)
		sync.POST("/run", middleware.RequirePermission(permission.ModuleAdmin, permission.ActionEdit), h.Run)
	}
}

// Status reports mirror connectivity and per-collection table existence
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// EnsureTables creates missing mirror tables for all collections
func (h *SyncHandler) EnsureTables(c *gin.Context) {
	if err := h.syncService.EnsureTables(c.Request.Context(), currentActor(c)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMirrorUnavailable) {
			status = http.StatusConflict
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Mirror tables ready"}))
}

// Run pushes every collection into its mirror table, tolerating per-record failures
func (h *SyncHandler) Run(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context(), currentActor(c))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrMirrorUnavailable) {
			status = http.StatusConflict
		}
		c.JSON(status, response.Error(status, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
