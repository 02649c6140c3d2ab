package service

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/permission"
	"backoffice/internal/store"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Permissions map[string][]string `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type SavePermissionsRequest struct {
	Permissions map[string][]string `json:"permissions" binding:"required"`
}

type RoleResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IsSystem    bool                `json:"is_system"`
	Permissions map[string][]string `json:"permissions"`
	CreatedAt   string              `json:"created_at"`
}

// --- Interface ---

type RoleService interface {
	ListRoles() ([]RoleResponse, error)
	GetRole(id string) (*RoleResponse, error)
	CreateRole(req CreateRoleRequest, actor Actor) (*RoleResponse, error)
	UpdateRole(id string, req UpdateRoleRequest, actor Actor) (*RoleResponse, error)
	DeleteRole(id string, actor Actor) error
	SavePermissions(id string, req SavePermissionsRequest, actor Actor) (*RoleResponse, error)
	SeedDefaultRoles() error
}

type roleService struct {
	roles  *store.Collection[model.Role]
	users  *store.Collection[model.User]
	engine *permission.Engine
	audit  AuditService
}

func NewRoleService(roles *store.Collection[model.Role], users *store.Collection[model.User], engine *permission.Engine, audit AuditService) RoleService {
	return &roleService{roles: roles, users: users, engine: engine, audit: audit}
}

// --- Implementation ---

func (s *roleService) ListRoles() ([]RoleResponse, error) {
	roles := s.roles.Scan()
	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) GetRole(id string) (*RoleResponse, error) {
	role, err := s.roles.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}
	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *roleService) CreateRole(req CreateRoleRequest, actor Actor) (*RoleResponse, error) {
	for _, existing := range s.roles.Scan() {
		if existing.Name == req.Name {
			return nil, fmt.Errorf("role name '%s' already exists", req.Name)
		}
	}

	now := time.Now()
	role := model.Role{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsSystem:    false,
		Permissions: permission.Normalize(req.Permissions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.roles.Insert(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.audit.Record(actor, model.ActionCreateRole, role.ID, role.Name, req)

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *roleService) UpdateRole(id string, req UpdateRoleRequest, actor Actor) (*RoleResponse, error) {
	role, err := s.roles.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	if err := s.checkChiefJusticeGate(id, actor); err != nil {
		return nil, err
	}

	// Core role names are fixed at bootstrap
	if role.IsSystem && req.Name != role.Name {
		return nil, fmt.Errorf("cannot rename system role '%s'", role.Name)
	}

	role.Name = req.Name
	role.Description = req.Description
	role.UpdatedAt = time.Now()

	if err := s.roles.Update(id, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.audit.Record(actor, model.ActionUpdateRole, role.ID, role.Name, req)

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *roleService) DeleteRole(id string, actor Actor) error {
	role, err := s.roles.FindByID(id)
	if err != nil {
		return fmt.Errorf("role not found: %w", err)
	}

	if role.IsSystem || model.IsCoreRole(id) {
		return fmt.Errorf("cannot delete system role '%s'", role.Name)
	}

	for _, u := range s.users.Scan() {
		if u.RoleID == id {
			return fmt.Errorf("cannot delete role '%s': still assigned to user '%s'", role.Name, u.Username)
		}
	}

	if err := s.roles.Delete(id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	s.audit.Record(actor, model.ActionDeleteRole, id, role.Name, nil)
	return nil
}

func (s *roleService) SavePermissions(id string, req SavePermissionsRequest, actor Actor) (*RoleResponse, error) {
	if err := s.checkChiefJusticeGate(id, actor); err != nil {
		return nil, err
	}

	if err := s.engine.SetPermissions(id, req.Permissions); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("role not found: %w", err)
		}
		return nil, err
	}

	role, err := s.roles.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	s.audit.Record(actor, model.ActionSavePermissions, id, role.Name, req)

	resp := toRoleResponse(role)
	return &resp, nil
}

// checkChiefJusticeGate rejects edits to the chief_justice role by anyone
// not currently holding it.
func (s *roleService) checkChiefJusticeGate(roleID string, actor Actor) error {
	if roleID == model.RoleChiefJustice && actor.RoleID != model.RoleChiefJustice {
		return fmt.Errorf("role '%s' can only be edited by its current holder", model.RoleChiefJustice)
	}
	return nil
}

// SeedDefaultRoles creates the core system roles if not already present.
// Existing records are left untouched so operator edits to descriptions or
// grants survive restarts.
func (s *roleService) SeedDefaultRoles() error {
	allView := map[string][]string{
		permission.ModuleCases:       {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleIndictments: {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleUsers:       {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleRoles:       {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleLimitations: {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleThemes:      {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleMaintenance: {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		permission.ModuleAdmin:       {permission.ActionView, permission.ActionEdit},
	}

	defaults := []model.Role{
		{
			ID:          model.RoleAdmin,
			Name:        "Administrator",
			Description: "Full access to every module",
			Permissions: allView,
		},
		{
			ID:          model.RoleChiefJustice,
			Name:        "Chief Justice",
			Description: "Head of the court; full case oversight",
			Permissions: map[string][]string{
				permission.ModuleCases:       {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
				permission.ModuleIndictments: {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
				permission.ModuleUsers:       {permission.ActionView},
				permission.ModuleRoles:       {permission.ActionView, permission.ActionEdit},
				permission.ModuleLimitations: {permission.ActionView},
			},
		},
		{
			ID:          model.RoleProsecutor,
			Name:        "Prosecutor",
			Description: "Files and manages indictments",
			Permissions: map[string][]string{
				permission.ModuleCases:       {permission.ActionView, permission.ActionCreate, permission.ActionEdit},
				permission.ModuleIndictments: {permission.ActionView, permission.ActionCreate, permission.ActionEdit},
				permission.ModuleLimitations: {permission.ActionView},
			},
		},
		{
			ID:          model.RoleJudge,
			Name:        "Judge",
			Description: "Reviews and rules on assigned cases",
			Permissions: map[string][]string{
				permission.ModuleCases:       {permission.ActionView, permission.ActionEdit},
				permission.ModuleIndictments: {permission.ActionView},
				permission.ModuleLimitations: {permission.ActionView},
			},
		},
		{
			ID:          model.RoleClerk,
			Name:        "Clerk",
			Description: "Maintains case records and schedules",
			Permissions: map[string][]string{
				permission.ModuleCases:       {permission.ActionView, permission.ActionCreate},
				permission.ModuleIndictments: {permission.ActionView},
				permission.ModuleLimitations: {permission.ActionView},
				permission.ModuleThemes:      {permission.ActionView},
			},
		},
	}

	for _, def := range defaults {
		if _, err := s.roles.FindByID(def.ID); err == nil {
			continue
		}
		now := time.Now()
		def.IsSystem = true
		def.Permissions = permission.Normalize(def.Permissions)
		def.CreatedAt = now
		def.UpdatedAt = now
		if err := s.roles.Insert(def); err != nil {
			return fmt.Errorf("failed to seed role '%s': %w", def.ID, err)
		}
	}
	return nil
}

// --- Helpers ---

func toRoleResponse(r model.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = map[string][]string{}
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: perms,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
