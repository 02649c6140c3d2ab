package service

import (
	"fmt"

	"backoffice/internal/model"
	"backoffice/internal/store"
	"backoffice/pkg/pagination"
)

// --- DTOs ---

type CaseHistoryEntryResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type CaseResponse struct {
	ID          string                     `json:"id"`
	CaseNumber  string                     `json:"case_number"`
	Title       string                     `json:"title"`
	Status      string                     `json:"status"`
	AssignedTo  string                     `json:"assigned_to"`
	DateCreated string                     `json:"date_created"`
	History     []CaseHistoryEntryResponse `json:"history,omitempty"`
}

type IndictmentResponse struct {
	ID          string `json:"id"`
	CaseID      string `json:"case_id"`
	Charge      string `json:"charge"`
	ClaimAmount string `json:"claim_amount"`
	BailAmount  string `json:"bail_amount"`
	FiledAt     string `json:"filed_at"`
}

type CaseStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// --- Interface ---

type CaseService interface {
	ListCases(p pagination.Params, status string) ([]CaseResponse, int64, error)
	GetCase(id string) (*CaseResponse, error)
	ListIndictments(p pagination.Params) ([]IndictmentResponse, int64, error)
	GetStats() (*CaseStatsResponse, error)
}

type caseService struct {
	cases       *store.Collection[model.Case]
	indictments *store.Collection[model.Indictment]
}

func NewCaseService(cases *store.Collection[model.Case], indictments *store.Collection[model.Indictment]) CaseService {
	return &caseService{cases: cases, indictments: indictments}
}

// --- Implementation ---

func (s *caseService) ListCases(p pagination.Params, status string) ([]CaseResponse, int64, error) {
	all := s.cases.Scan()

	filtered := all
	if status != "" {
		filtered = filtered[:0:0]
		for _, c := range all {
			if c.Status == status {
				filtered = append(filtered, c)
			}
		}
	}

	total := int64(len(filtered))
	page := pagination.Slice(filtered, p)
	res := make([]CaseResponse, 0, len(page))
	for _, c := range page {
		res = append(res, toCaseResponse(c))
	}
	return res, total, nil
}

func (s *caseService) GetCase(id string) (*CaseResponse, error) {
	c, err := s.cases.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("case not found: %w", err)
	}
	resp := toCaseResponse(c)
	return &resp, nil
}

func (s *caseService) ListIndictments(p pagination.Params) ([]IndictmentResponse, int64, error) {
	all := s.indictments.Scan()
	total := int64(len(all))

	page := pagination.Slice(all, p)
	res := make([]IndictmentResponse, 0, len(page))
	for _, i := range page {
		res = append(res, IndictmentResponse{
			ID:          i.ID,
			CaseID:      i.CaseID,
			Charge:      i.Charge,
			ClaimAmount: i.ClaimAmount.StringFixed(2),
			BailAmount:  i.BailAmount.StringFixed(2),
			FiledAt:     i.FiledAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, total, nil
}

// GetStats returns case counts grouped by status for the dashboard.
func (s *caseService) GetStats() (*CaseStatsResponse, error) {
	all := s.cases.Scan()
	byStatus := make(map[string]int64)
	for _, c := range all {
		byStatus[c.Status]++
	}
	return &CaseStatsResponse{
		Total:    int64(len(all)),
		ByStatus: byStatus,
	}, nil
}

// --- Helpers ---

func toCaseResponse(c model.Case) CaseResponse {
	history := make([]CaseHistoryEntryResponse, 0, len(c.History))
	for _, h := range c.History {
		history = append(history, CaseHistoryEntryResponse{
			Date:   h.Date.Format("2006-01-02 15:04:05"),
			Status: h.Status,
			Note:   h.Note,
		})
	}
	return CaseResponse{
		ID:          c.ID,
		CaseNumber:  c.CaseNumber,
		Title:       c.Title,
		Status:      c.Status,
		AssignedTo:  c.AssignedTo,
		DateCreated: c.DateCreated.Format("2006-01-02 15:04:05"),
		History:     history,
	}
}
