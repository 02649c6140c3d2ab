package handler

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	maintenance := router.Group("/api/maintenance")
	{
		maintenance.POST("/status-normalization", middleware.RequirePermission(permission.ModuleMaintenance, permission.ActionEdit), h.NormalizeStatuses)
		maintenance.POST("/duplicate-collapse", middleware.RequirePermission(permission.ModuleMaintenance, permission.ActionEdit), h.CollapseDuplicates)
		maintenance.POST("/timed-deletion", middleware.RequirePermission(permission.ModuleMaintenance, permission.ActionDelete), h.TimedDeletion)
	}
}

// NormalizeStatuses maps legacy localized status strings to canonical ids
// @Summary      Normalize legacy case statuses
// @Description  Rewrites legacy localized status values (including nested history entries) to canonical identifiers. Idempotent: a second run writes nothing.
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.NormalizeResult}
// @Failure      500  {object}  response.Response
// @Router       /api/maintenance/status-normalization [post]
func (h *MaintenanceHandler) NormalizeStatuses(c *gin.Context) {
	result, err := h.maintenanceService.NormalizeStatuses(currentActor(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CollapseDuplicates keeps only the newest user record per username
// @Summary      Collapse duplicate user records
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.CollapseResult}
// @Failure      500  {object}  response.Response
// @Router       /api/maintenance/duplicate-collapse [post]
func (h *MaintenanceHandler) CollapseDuplicates(c *gin.Context) {
	result, err := h.maintenanceService.CollapseDuplicates(currentActor(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// TimedDeletion deletes cases inside an inclusive date range; without the
// confirm flag it only previews the matched set
// @Summary      Delete cases within a date range
// @Description  Matches cases whose creation date falls in the inclusive [start, end] range. confirm=false previews without writing; confirm=true deletes.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.TimedDeletionRequest  true  "Range and confirmation flag"
// @Success      200      {object}  response.Response{data=service.TimedDeletionResult}
// @Failure      400      {object}  response.Response
// @Router       /api/maintenance/timed-deletion [post]
func (h *MaintenanceHandler) TimedDeletion(c *gin.Context) {
	var req service.TimedDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.maintenanceService.TimedDeletion(req, currentActor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
