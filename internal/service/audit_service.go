package service

import (
	"encoding/json"
	"log"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/store"
	"backoffice/internal/websocket"
	"backoffice/pkg/pagination"

	"github.com/google/uuid"
)

// Actor identifies the authenticated user performing a service call.
type Actor struct {
	ID       string
	Username string
	RoleID   string
}

type AuditEntryResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	Record(actor Actor, action, entityID, entityName string, details interface{})
	List(p pagination.Params) ([]AuditEntryResponse, int64, error)
}

type auditService struct {
	entries *store.Collection[model.AuditEntry]
	hub     *websocket.Hub
}

// NewAuditService creates an AuditService persisting to the audit collection
// and pushing each entry onto the admin event feed.
func NewAuditService(entries *store.Collection[model.AuditEntry], hub *websocket.Hub) AuditService {
	return &auditService{entries: entries, hub: hub}
}

// Record appends one audit entry. Auditing is best-effort: a failed write is
// logged and never fails the action it describes.
func (s *auditService) Record(actor Actor, action, entityID, entityName string, details interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	entry := model.AuditEntry{
		ID:         uuid.NewString(),
		UserID:     actor.ID,
		Username:   actor.Username,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
		CreatedAt:  time.Now(),
	}

	if err := s.entries.Insert(entry); err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(entry)
	}
}

// List returns audit entries newest first.
func (s *auditService) List(p pagination.Params) ([]AuditEntryResponse, int64, error) {
	all := s.entries.Scan()
	total := int64(len(all))

	// newest first
	reversed := make([]model.AuditEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		reversed = append(reversed, all[i])
	}

	page := pagination.Slice(reversed, p)
	res := make([]AuditEntryResponse, 0, len(page))
	for _, e := range page {
		res = append(res, AuditEntryResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Username:   e.Username,
			Action:     e.Action,
			EntityID:   e.EntityID,
			EntityName: e.EntityName,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}
