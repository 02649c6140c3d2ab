package model

import "time"

// User status values
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents an administrative account of the back office
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	RoleID       string    `json:"role_id"`
	Status       string    `json:"status"` // active, inactive
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BadgeNumber  string    `json:"badge_number"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	// IsAdmin caches whether the user's role grants admin:view. It is
	// recomputed on every save and never trusted as ground truth.
	IsAdmin bool `json:"is_admin"`
	// Legacy files carry bare YYYY-MM-DD creation dates
	DateCreated Timestamp `json:"date_created"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecordID implements store.Record
func (u User) RecordID() string { return u.ID }
