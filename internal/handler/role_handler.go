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

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	roles := router.Group("/api/roles")
	{
		roles.GET("", middleware.RequirePermission(permission.ModuleRoles, permission.ActionView), h.ListRoles)
		roles.GET("/:id", middleware.RequirePermission(permission.ModuleRoles, permission.ActionView), h.GetRole)
		roles.POST("", middleware.RequirePermission(permission.ModuleRoles, permission.ActionCreate), h.CreateRole)
		roles.PUT("/:id", middleware.RequirePermission(permission.ModuleRoles, permission.ActionEdit), h.UpdateRole)
		roles.DELETE("/:id", middleware.RequirePermission(permission.ModuleRoles, permission.ActionDelete), h.DeleteRole)
		roles.PUT("/:id/permissions", middleware.RequirePermission(permission.ModuleRoles, permission.ActionEdit), h.SavePermissions)
	}

	// Static catalogs defining the permission matrix axes
	perms := router.Group("/api/permissions")
	perms.Use(middleware.RequirePermission(permission.ModuleRoles, permission.ActionView))
	{
		perms.GET("/modules", h.ListModules)
		perms.GET("/actions", h.ListActions)
	}
}

// ListRoles returns all roles with their permission grants
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// GetRole returns a single role by ID
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.GetRole(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// CreateRole creates a new custom role
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req service.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.CreateRole(req, currentActor(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, role))
}

// UpdateRole updates a role's name and description
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.UpdateRole(c.Param("id"), req, currentActor(c))
	if err != nil {
		c.JSON(statusForRoleErr(err), response.Error(statusForRoleErr(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// DeleteRole deletes a non-system role
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleService.DeleteRole(c.Param("id"), currentActor(c)); err != nil {
		c.JSON(statusForRoleErr(err), response.Error(statusForRoleErr(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Role deleted successfully"}))
}

// SavePermissions replaces all permission grants for a role
func (h *RoleHandler) SavePermissions(c *gin.Context) {
	var req service.SavePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	role, err := h.roleService.SavePermissions(c.Param("id"), req, currentActor(c))
	if err != nil {
		c.JSON(statusForRoleErr(err), response.Error(statusForRoleErr(err), err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, role))
}

// ListModules returns the module axis of the permission matrix
func (h *RoleHandler) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, permission.Modules()))
}

// ListActions returns the action axis of the permission matrix
func (h *RoleHandler) ListActions(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, permission.Actions()))
}

func statusForRoleErr(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
