package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical case status identifiers. Legacy collections may still carry
// localized strings; maintenance normalization rewrites them.
const (
	CaseStatusOpen       = "open"
	CaseStatusInProgress = "in_progress"
	CaseStatusCompleted  = "completed"
	CaseStatusArchived   = "archived"
)

// CaseHistoryEntry is one nested status change on a case record
type CaseHistoryEntry struct {
	Date   Timestamp `json:"date"`
	Status string    `json:"status"`
	Note   string    `json:"note,omitempty"`
}

// Case represents a tracked court case. Date fields tolerate the legacy
// bare-date format alongside RFC 3339.
type Case struct {
	ID          string             `json:"id"`
	CaseNumber  string             `json:"case_number"`
	Title       string             `json:"title"`
	Status      string             `json:"status"`
	AssignedTo  string             `json:"assigned_to"` // user id
	DateCreated Timestamp          `json:"date_created"`
	History     []CaseHistoryEntry `json:"history,omitempty"`
}

// RecordID implements store.Record
func (c Case) RecordID() string { return c.ID }

// Indictment represents a filed charge attached to a case
type Indictment struct {
	ID          string          `json:"id"`
	CaseID      string          `json:"case_id"`
	Charge      string          `json:"charge"`
	ClaimAmount decimal.Decimal `json:"claim_amount"`
	BailAmount  decimal.Decimal `json:"bail_amount"`
	FiledAt     time.Time       `json:"filed_at"`
}

// RecordID implements store.Record
func (i Indictment) RecordID() string { return i.ID }
