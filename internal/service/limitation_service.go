package service

import (
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/store"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateLimitationRequest struct {
	Offense     string `json:"offense" binding:"required"`
	Description string `json:"description"`
	Years       int    `json:"years" binding:"required,min=1"`
	Category    string `json:"category"`
}

type UpdateLimitationRequest struct {
	Offense     string `json:"offense" binding:"required"`
	Description string `json:"description"`
	Years       int    `json:"years" binding:"required,min=1"`
	Category    string `json:"category"`
}

type LimitationResponse struct {
	ID          string `json:"id"`
	Offense     string `json:"offense"`
	Description string `json:"description"`
	Years       int    `json:"years"`
	Category    string `json:"category"`
	CreatedAt   string `json:"created_at"`
}

// --- Interface ---

type LimitationService interface {
	ListLimitations() ([]LimitationResponse, error)
	GetLimitation(id string) (*LimitationResponse, error)
	CreateLimitation(req CreateLimitationRequest, actor Actor) (*LimitationResponse, error)
	UpdateLimitation(id string, req UpdateLimitationRequest, actor Actor) (*LimitationResponse, error)
	DeleteLimitation(id string, actor Actor) error
}

type limitationService struct {
	limitations *store.Collection[model.Limitation]
	audit       AuditService
}

func NewLimitationService(limitations *store.Collection[model.Limitation], audit AuditService) LimitationService {
	return &limitationService{limitations: limitations, audit: audit}
}

// --- Implementation ---

func (s *limitationService) ListLimitations() ([]LimitationResponse, error) {
	all := s.limitations.Scan()
	res := make([]LimitationResponse, 0, len(all))
	for _, l := range all {
		res = append(res, toLimitationResponse(l))
	}
	return res, nil
}

func (s *limitationService) GetLimitation(id string) (*LimitationResponse, error) {
	l, err := s.limitations.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("limitation not found: %w", err)
	}
	resp := toLimitationResponse(l)
	return &resp, nil
}

func (s *limitationService) CreateLimitation(req CreateLimitationRequest, actor Actor) (*LimitationResponse, error) {
	now := time.Now()
	l := model.Limitation{
		ID:          uuid.NewString(),
		Offense:     req.Offense,
		Description: req.Description,
		Years:       req.Years,
		Category:    req.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.limitations.Insert(l); err != nil {
		return nil, fmt.Errorf("failed to create limitation: %w", err)
	}

	s.audit.Record(actor, model.ActionCreateLimitation, l.ID, l.Offense, req)

	resp := toLimitationResponse(l)
	return &resp, nil
}

func (s *limitationService) UpdateLimitation(id string, req UpdateLimitationRequest, actor Actor) (*LimitationResponse, error) {
	l, err := s.limitations.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("limitation not found: %w", err)
	}

	l.Offense = req.Offense
	l.Description = req.Description
	l.Years = req.Years
	l.Category = req.Category
	l.UpdatedAt = time.Now()

	if err := s.limitations.Update(id, l); err != nil {
		return nil, fmt.Errorf("failed to update limitation: %w", err)
	}

	s.audit.Record(actor, model.ActionUpdateLimitation, l.ID, l.Offense, req)

	resp := toLimitationResponse(l)
	return &resp, nil
}

func (s *limitationService) DeleteLimitation(id string, actor Actor) error {
	l, err := s.limitations.FindByID(id)
	if err != nil {
		return fmt.Errorf("limitation not found: %w", err)
	}

	if err := s.limitations.Delete(id); err != nil {
		return fmt.Errorf("failed to delete limitation: %w", err)
	}

	s.audit.Record(actor, model.ActionDeleteLimitation, id, l.Offense, nil)
	return nil
}

// --- Helpers ---

func toLimitationResponse(l model.Limitation) LimitationResponse {
	return LimitationResponse{
		ID:          l.ID,
		Offense:     l.Offense,
		Description: l.Description,
		Years:       l.Years,
		Category:    l.Category,
		CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
