package model

import "time"

// Core role ids seeded at bootstrap. Their id and name are fixed and the
// records cannot be deleted.
const (
	RoleAdmin      = "admin"
	RoleProsecutor = "prosecutor"
	RoleJudge      = "judge"
	RoleClerk      = "clerk"

	// RoleChiefJustice is additionally guarded: only the user currently
	// holding it may edit it.
	RoleChiefJustice = "chief_justice"
)

// Role represents a user role with its per-module permission grants
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IsSystem    bool                `json:"is_system"`   // Prevent deletion/rename of built-in roles
	Permissions map[string][]string `json:"permissions"` // module id -> granted action ids
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// RecordID implements store.Record
func (r Role) RecordID() string { return r.ID }

// IsCoreRole reports whether id belongs to the fixed set of system roles
func IsCoreRole(id string) bool {
	switch id {
	case RoleAdmin, RoleProsecutor, RoleJudge, RoleClerk, RoleChiefJustice:
		return true
	}
	return false
}
