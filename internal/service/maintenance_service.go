package service

import (
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/store"
)

// legacyStatuses maps localized status strings left behind by the previous
// system to canonical identifiers. The table is fixed; unknown values pass
// through untouched.
var legacyStatuses = map[string]string{
	"Offen":          model.CaseStatusOpen,
	"In Bearbeitung": model.CaseStatusInProgress,
	"Abgeschlossen":  model.CaseStatusCompleted,
	"Archiviert":     model.CaseStatusArchived,
}

// --- DTOs ---

type NormalizeResult struct {
	Changed int  `json:"changed"`
	Written bool `json:"written"`
}

type CollapseResult struct {
	Removed int  `json:"removed"`
	Written bool `json:"written"`
}

type TimedDeletionRequest struct {
	Start   string `json:"start" binding:"required"` // YYYY-MM-DD
	End     string `json:"end" binding:"required"`   // YYYY-MM-DD
	Confirm bool   `json:"confirm"`
}

type TimedDeletionResult struct {
	Matched []CaseResponse `json:"matched"`
	Deleted bool           `json:"deleted"`
}

// --- Interface ---

type MaintenanceService interface {
	NormalizeStatuses(actor Actor) (*NormalizeResult, error)
	CollapseDuplicates(actor Actor) (*CollapseResult, error)
	TimedDeletion(req TimedDeletionRequest, actor Actor) (*TimedDeletionResult, error)
}

type maintenanceService struct {
	cases *store.Collection[model.Case]
	users *store.Collection[model.User]
	audit AuditService
}

func NewMaintenanceService(cases *store.Collection[model.Case], users *store.Collection[model.User], audit AuditService) MaintenanceService {
	return &maintenanceService{cases: cases, users: users, audit: audit}
}

// --- Implementation ---

// NormalizeStatuses rewrites legacy localized status strings to canonical
// identifiers, including nested history entries. The collection file is only
// rewritten when at least one value changed, so a second run is a no-op.
func (s *maintenanceService) NormalizeStatuses(actor Actor) (*NormalizeResult, error) {
	cases := s.cases.Scan()
	changed := 0

	for i := range cases {
		if canonical, ok := legacyStatuses[cases[i].Status]; ok {
			cases[i].Status = canonical
			changed++
		}
		for j := range cases[i].History {
			if canonical, ok := legacyStatuses[cases[i].History[j].Status]; ok {
				cases[i].History[j].Status = canonical
				changed++
			}
		}
	}

	if changed == 0 {
		return &NormalizeResult{Changed: 0, Written: false}, nil
	}

	if err := s.cases.Replace(cases); err != nil {
		return nil, fmt.Errorf("failed to persist normalized statuses: %w", err)
	}

	s.audit.Record(actor, model.ActionNormalizeStatuses, "", "cases", NormalizeResult{Changed: changed, Written: true})

	return &NormalizeResult{Changed: changed, Written: true}, nil
}

// CollapseDuplicates groups users by username and keeps only the record with
// the latest creation timestamp per group, preserving collection order for
// the survivors.
func (s *maintenanceService) CollapseDuplicates(actor Actor) (*CollapseResult, error) {
	users := s.users.Scan()

	// latest record index per username
	latest := make(map[string]int, len(users))
	for i, u := range users {
		prev, seen := latest[u.Username]
		if !seen || u.DateCreated.After(users[prev].DateCreated.Time) {
			latest[u.Username] = i
		}
	}

	kept := make([]model.User, 0, len(latest))
	for i, u := range users {
		if latest[u.Username] == i {
			kept = append(kept, u)
		}
	}

	removed := len(users) - len(kept)
	if removed == 0 {
		return &CollapseResult{Removed: 0, Written: false}, nil
	}

	if err := s.users.Replace(kept); err != nil {
		return nil, fmt.Errorf("failed to persist duplicate collapse: %w", err)
	}

	s.audit.Record(actor, model.ActionCollapseDupes, "", "users", CollapseResult{Removed: removed, Written: true})

	return &CollapseResult{Removed: removed, Written: true}, nil
}

// TimedDeletion removes cases whose creation date falls inside the inclusive
// [start, end] range. Without confirm the matched set is returned as a
// preview and nothing is written.
func (s *maintenanceService) TimedDeletion(req TimedDeletionRequest, actor Actor) (*TimedDeletionResult, error) {
	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date '%s': expected YYYY-MM-DD", req.Start)
	}
	end, err := time.Parse("2006-01-02", req.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end date '%s': expected YYYY-MM-DD", req.End)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date")
	}
	// inclusive of the whole end day
	cutoff := end.AddDate(0, 0, 1)

	cases := s.cases.Scan()
	var matched []model.Case
	var remaining []model.Case
	for _, c := range cases {
		if !c.DateCreated.Before(start) && c.DateCreated.Before(cutoff) {
			matched = append(matched, c)
		} else {
			remaining = append(remaining, c)
		}
	}

	res := &TimedDeletionResult{Matched: make([]CaseResponse, 0, len(matched))}
	for _, c := range matched {
		res.Matched = append(res.Matched, toCaseResponse(c))
	}

	if !req.Confirm || len(matched) == 0 {
		return res, nil
	}

	if err := s.cases.Replace(remaining); err != nil {
		return nil, fmt.Errorf("failed to persist timed deletion: %w", err)
	}
	res.Deleted = true

	s.audit.Record(actor, model.ActionTimedDeletion, "", "cases", map[string]interface{}{
		"start":   req.Start,
		"end":     req.End,
		"deleted": len(matched),
	})

	return res, nil
}
