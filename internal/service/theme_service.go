package service

import (
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/store"

	"github.com/google/uuid"
)

// --- DTOs ---

type SaveThemeRequest struct {
	Name   string            `json:"name" binding:"required"`
	Colors map[string]string `json:"colors" binding:"required"`
}

type ThemeResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Colors   map[string]string `json:"colors"`
	IsActive bool              `json:"is_active"`
}

// --- Interface ---

type ThemeService interface {
	ListThemes() ([]ThemeResponse, error)
	CreateTheme(req SaveThemeRequest, actor Actor) (*ThemeResponse, error)
	UpdateTheme(id string, req SaveThemeRequest, actor Actor) (*ThemeResponse, error)
	DeleteTheme(id string, actor Actor) error
	ActivateTheme(id string, actor Actor) (*ThemeResponse, error)
}

type themeService struct {
	themes *store.Collection[model.Theme]
	audit  AuditService
}

func NewThemeService(themes *store.Collection[model.Theme], audit AuditService) ThemeService {
	return &themeService{themes: themes, audit: audit}
}

// --- Implementation ---

func (s *themeService) ListThemes() ([]ThemeResponse, error) {
	all := s.themes.Scan()
	res := make([]ThemeResponse, 0, len(all))
	for _, t := range all {
		res = append(res, toThemeResponse(t))
	}
	return res, nil
}

func (s *themeService) CreateTheme(req SaveThemeRequest, actor Actor) (*ThemeResponse, error) {
	now := time.Now()
	theme := model.Theme{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Colors:    req.Colors,
		IsActive:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.themes.Insert(theme); err != nil {
		return nil, fmt.Errorf("failed to create theme: %w", err)
	}

	s.audit.Record(actor, model.ActionSaveTheme, theme.ID, theme.Name, req)

	resp := toThemeResponse(theme)
	return &resp, nil
}

func (s *themeService) UpdateTheme(id string, req SaveThemeRequest, actor Actor) (*ThemeResponse, error) {
	theme, err := s.themes.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("theme not found: %w", err)
	}

	theme.Name = req.Name
	theme.Colors = req.Colors
	theme.UpdatedAt = time.Now()

	if err := s.themes.Update(id, theme); err != nil {
		return nil, fmt.Errorf("failed to update theme: %w", err)
	}

	s.audit.Record(actor, model.ActionSaveTheme, theme.ID, theme.Name, req)

	resp := toThemeResponse(theme)
	return &resp, nil
}

func (s *themeService) DeleteTheme(id string, actor Actor) error {
	theme, err := s.themes.FindByID(id)
	if err != nil {
		return fmt.Errorf("theme not found: %w", err)
	}

	if theme.IsActive {
		return fmt.Errorf("cannot delete the active theme '%s'", theme.Name)
	}

	if err := s.themes.Delete(id); err != nil {
		return fmt.Errorf("failed to delete theme: %w", err)
	}

	s.audit.Record(actor, model.ActionDeleteTheme, id, theme.Name, nil)
	return nil
}

// ActivateTheme marks one theme active and deactivates every other one in a
// single whole-collection write.
func (s *themeService) ActivateTheme(id string, actor Actor) (*ThemeResponse, error) {
	all := s.themes.Scan()

	var activated *model.Theme
	for i := range all {
		if all[i].ID == id {
			all[i].IsActive = true
			all[i].UpdatedAt = time.Now()
			activated = &all[i]
		} else {
			all[i].IsActive = false
		}
	}
	if activated == nil {
		return nil, fmt.Errorf("theme %q: %w", id, store.ErrNotFound)
	}

	if err := s.themes.Replace(all); err != nil {
		return nil, fmt.Errorf("failed to activate theme: %w", err)
	}

	s.audit.Record(actor, model.ActionActivateTheme, id, activated.Name, nil)

	resp := toThemeResponse(*activated)
	return &resp, nil
}

// --- Helpers ---

func toThemeResponse(t model.Theme) ThemeResponse {
	colors := t.Colors
	if colors == nil {
		colors = map[string]string{}
	}
	return ThemeResponse{
		ID:       t.ID,
		Name:     t.Name,
		Colors:   colors,
		IsActive: t.IsActive,
	}
}
