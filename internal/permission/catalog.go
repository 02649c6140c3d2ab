// Package permission answers "may role R perform action A on module M?"
// against the stored role records. Grants are evaluated per request, so a
// role edit takes effect on the next request without re-authentication.
package permission

// ModuleInfo is one axis entry of the permission matrix
type ModuleInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ActionInfo is the other axis entry of the permission matrix
type ActionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Module ids
const (
	ModuleCases       = "cases"
	ModuleIndictments = "indictments"
	ModuleUsers       = "users"
	ModuleRoles       = "roles"
	ModuleLimitations = "limitations"
	ModuleThemes      = "themes"
	ModuleMaintenance = "maintenance"
	ModuleAdmin       = "admin"
)

// Action ids
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

var modules = []ModuleInfo{
	{ID: ModuleCases, Name: "Cases"},
	{ID: ModuleIndictments, Name: "Indictments"},
	{ID: ModuleUsers, Name: "Users"},
	{ID: ModuleRoles, Name: "Roles & Permissions"},
	{ID: ModuleLimitations, Name: "Statute Limitations"},
	{ID: ModuleThemes, Name: "Themes"},
	{ID: ModuleMaintenance, Name: "Data Maintenance"},
	{ID: ModuleAdmin, Name: "Administration"},
}

var actions = []ActionInfo{
	{ID: ActionView, Name: "View"},
	{ID: ActionCreate, Name: "Create"},
	{ID: ActionEdit, Name: "Edit"},
	{ID: ActionDelete, Name: "Delete"},
}

// Modules returns the static, ordered module catalog. The catalog defines
// the matrix axes and is not user-editable data.
func Modules() []ModuleInfo {
	out := make([]ModuleInfo, len(modules))
	copy(out, modules)
	return out
}

// Actions returns the static, ordered action catalog.
func Actions() []ActionInfo {
	out := make([]ActionInfo, len(actions))
	copy(out, actions)
	return out
}

// KnownModule reports whether id is a catalog module.
func KnownModule(id string) bool {
	for _, m := range modules {
		if m.ID == id {
			return true
		}
	}
	return false
}

// KnownAction reports whether id is a catalog action.
func KnownAction(id string) bool {
	for _, a := range actions {
		if a.ID == id {
			return true
		}
	}
	return false
}
