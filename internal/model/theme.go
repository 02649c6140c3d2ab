package model

import "time"

// Theme is a named color scheme for the admin UI. At most one theme is
// active at a time; activating one deactivates the rest.
type Theme struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Colors    map[string]string `json:"colors"` // e.g. "primary" -> "#1a237e"
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// RecordID implements store.Record
func (t Theme) RecordID() string { return t.ID }
