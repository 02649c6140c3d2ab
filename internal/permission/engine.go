package permission

import (
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/store"
)

// Engine resolves grants against the roles collection. It holds no cache:
// every check reads the stored role record.
type Engine struct {
	roles *store.Collection[model.Role]
}

// NewEngine creates an Engine over the roles collection.
func NewEngine(roles *store.Collection[model.Role]) *Engine {
	return &Engine{roles: roles}
}

// IsGranted reports whether the role grants the action on the module.
// Unknown role ids and absent grants are both denials (default-deny,
// fail-closed).
func (e *Engine) IsGranted(roleID, module, action string) bool {
	role, err := e.roles.FindByID(roleID)
	if err != nil {
		return false
	}
	for _, a := range role.Permissions[module] {
		if a == action {
			return true
		}
	}
	return false
}

// GrantsFor returns a copy of the role's grants for editing UIs. An unknown
// role yields an empty map.
func (e *Engine) GrantsFor(roleID string) map[string][]string {
	role, err := e.roles.FindByID(roleID)
	if err != nil {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(role.Permissions))
	for module, acts := range role.Permissions {
		out[module] = append([]string(nil), acts...)
	}
	return out
}

// SetPermissions normalizes the grants and replaces the role's entire
// permissions field, then persists the role record.
func (e *Engine) SetPermissions(roleID string, grants map[string][]string) error {
	role, err := e.roles.FindByID(roleID)
	if err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}

	role.Permissions = Normalize(grants)
	role.UpdatedAt = time.Now()

	if err := e.roles.Update(roleID, role); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	return nil
}

// Normalize dedupes each action set, drops empty action ids, and drops
// modules or actions that are not in the catalog. Order within a set follows
// first occurrence.
func Normalize(grants map[string][]string) map[string][]string {
	out := make(map[string][]string, len(grants))
	for module, acts := range grants {
		if !KnownModule(module) {
			continue
		}
		seen := make(map[string]bool, len(acts))
		var cleaned []string
		for _, a := range acts {
			if a == "" || !KnownAction(a) || seen[a] {
				continue
			}
			seen[a] = true
			cleaned = append(cleaned, a)
		}
		if len(cleaned) > 0 {
			out[module] = cleaned
		}
	}
	return out
}
