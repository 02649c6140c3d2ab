package service

import (
	"context"
	"errors"
	"log"

	"backoffice/internal/model"
	"backoffice/internal/store"
)

// --- DTOs ---

type CollectionStatus struct {
	Collection  string `json:"collection"`
	Records     int    `json:"records"`
	TableExists bool   `json:"table_exists"`
}

type SyncStatusResponse struct {
	MirrorAvailable bool               `json:"mirror_available"`
	Collections     []CollectionStatus `json:"collections"`
}

type SyncRunResponse struct {
	Results []store.SyncResult `json:"results"`
	Synced  int                `json:"synced"`
	Skipped int                `json:"skipped"`
}

// ErrMirrorUnavailable is returned when no relational connection was
// established at startup. Absence of connectivity is a supported state: the
// service keeps running file-only and reports it here.
var ErrMirrorUnavailable = errors.New("relational mirror is not available")

// --- Interface ---

type SyncService interface {
	Status(ctx context.Context) (*SyncStatusResponse, error)
	EnsureTables(ctx context.Context, actor Actor) error
	Run(ctx context.Context, actor Actor) (*SyncRunResponse, error)
}

type syncService struct {
	mirror *store.Mirror // nil when connectivity was not established
	dir    string
	audit  AuditService
}

func NewSyncService(mirror *store.Mirror, dir string, audit AuditService) SyncService {
	return &syncService{mirror: mirror, dir: dir, audit: audit}
}

// --- Implementation ---

func (s *syncService) Status(ctx context.Context) (*SyncStatusResponse, error) {
	resp := &SyncStatusResponse{
		MirrorAvailable: s.mirror != nil,
		Collections:     make([]CollectionStatus, 0, len(store.Collections)),
	}

	for _, name := range store.Collections {
		cs := CollectionStatus{
			Collection: name,
			Records:    len(store.RawScan(s.dir, name)),
		}
		if s.mirror != nil {
			cs.TableExists = s.mirror.HasTable(name)
		}
		resp.Collections = append(resp.Collections, cs)
	}

	return resp, nil
}

func (s *syncService) EnsureTables(ctx context.Context, actor Actor) error {
	if s.mirror == nil {
		return ErrMirrorUnavailable
	}

	for _, name := range store.Collections {
		if err := s.mirror.EnsureTable(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// Run syncs every collection whose mirror table exists. Collections without
// a table are skipped and logged; record-level failures inside a collection
// are tolerated by the mirror itself.
func (s *syncService) Run(ctx context.Context, actor Actor) (*SyncRunResponse, error) {
	if s.mirror == nil {
		return nil, ErrMirrorUnavailable
	}

	resp := &SyncRunResponse{}
	for _, name := range store.Collections {
		if !s.mirror.HasTable(name) {
			log.Printf("sync: skipping %s, mirror table missing", name)
			continue
		}
		result, err := s.mirror.SyncCollection(ctx, name)
		if err != nil {
			log.Printf("sync: collection %s failed: %v", name, err)
			continue
		}
		resp.Results = append(resp.Results, result)
		resp.Synced += result.Synced
		resp.Skipped += result.Skipped
	}

	s.audit.Record(actor, model.ActionSyncCollections, "", "mirror", resp)

	return resp, nil
}
