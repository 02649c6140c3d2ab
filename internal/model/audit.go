package model

import "time"

const (
	ActionCreateRole        = "CREATE_ROLE"
	ActionUpdateRole        = "UPDATE_ROLE"
	ActionDeleteRole        = "DELETE_ROLE"
	ActionSavePermissions   = "SAVE_PERMISSIONS"
	ActionCreateUser        = "CREATE_USER"
	ActionUpdateUser        = "UPDATE_USER"
	ActionDeleteUser        = "DELETE_USER"
	ActionCreateLimitation  = "CREATE_LIMITATION"
	ActionUpdateLimitation  = "UPDATE_LIMITATION"
	ActionDeleteLimitation  = "DELETE_LIMITATION"
	ActionSaveTheme         = "SAVE_THEME"
	ActionActivateTheme     = "ACTIVATE_THEME"
	ActionDeleteTheme       = "DELETE_THEME"
	ActionNormalizeStatuses = "NORMALIZE_STATUSES"
	ActionCollapseDupes     = "COLLAPSE_DUPLICATES"
	ActionTimedDeletion     = "TIMED_DELETION"
	ActionSyncCollections   = "SYNC_COLLECTIONS"
)

// AuditEntry tracks Who, What, and When for critical system changes
type AuditEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id"`
	EntityName string    `json:"entity_name,omitempty"`
	Details    string    `json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time `json:"created_at"`
}

// RecordID implements store.Record
func (a AuditEntry) RecordID() string { return a.ID }
