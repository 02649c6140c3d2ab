package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Mirror replicates collection files into relational tables, one table per
// collection, upserting by primary key id. Conflict resolution is
// last-write-wins: the incoming document always overwrites the stored row.
type Mirror struct {
	db  *gorm.DB
	dir string
}

// SyncResult summarizes one sync run over a single collection.
type SyncResult struct {
	Collection string `json:"collection"`
	Synced     int    `json:"synced"`
	Skipped    int    `json:"skipped"`
}

// NewMirror binds a mirror to an open gorm connection and the data dir the
// collection files live in.
func NewMirror(db *gorm.DB, dir string) *Mirror {
	return &Mirror{db: db, dir: dir}
}

// HasTable reports whether the mirror table for a collection exists,
// via a catalog query.
func (m *Mirror) HasTable(collection string) bool {
	return m.db.Migrator().HasTable(collection)
}

// EnsureTable creates the mirror table for a collection if it is missing.
// Collection names come from the fixed Collections whitelist, never from
// request input.
func (m *Mirror) EnsureTable(ctx context.Context, collection string) error {
	sql := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %q (id text PRIMARY KEY, data jsonb NOT NULL)`,
		collection,
	)
	if err := m.db.WithContext(ctx).Exec(sql).Error; err != nil {
		return fmt.Errorf("ensure table %s: %w", collection, err)
	}
	return nil
}

// Upsert writes one record row. Each call is its own statement; there is no
// cross-record transaction on purpose, so a failing record never rolls back
// its predecessors.
func (m *Mirror) Upsert(ctx context.Context, collection, id string, doc json.RawMessage) error {
	sql := fmt.Sprintf(
		`INSERT INTO %q (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		collection,
	)
	return m.db.WithContext(ctx).Exec(sql, id, string(doc)).Error
}

// SyncCollection pushes every record of one collection file into its mirror
// table. Records that fail to upsert (or carry no id) are logged and
// skipped; the batch continues.
func (m *Mirror) SyncCollection(ctx context.Context, collection string) (SyncResult, error) {
	res := SyncResult{Collection: collection}
	if !m.HasTable(collection) {
		return res, fmt.Errorf("mirror table %q does not exist", collection)
	}

	for _, doc := range RawScan(m.dir, collection) {
		var header struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(doc, &header); err != nil || header.ID == "" {
			log.Printf("sync %s: skipping record without id", collection)
			res.Skipped++
			continue
		}
		if err := m.Upsert(ctx, collection, header.ID, doc); err != nil {
			log.Printf("sync %s: record %s failed: %v", collection, header.ID, err)
			res.Skipped++
			continue
		}
		res.Synced++
	}
	return res, nil
}
