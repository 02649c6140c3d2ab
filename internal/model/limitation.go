package model

import "time"

// Limitation is one statute-of-limitations catalog entry
type Limitation struct {
	ID          string    `json:"id"`
	Offense     string    `json:"offense"`
	Description string    `json:"description"`
	Years       int       `json:"years"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecordID implements store.Record
func (l Limitation) RecordID() string { return l.ID }
