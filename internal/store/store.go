// Package store persists named collections as pretty-printed JSON array
// files, with an optional PostgreSQL mirror. Every mutation rewrites the
// whole collection file; last writer wins, no locking.
package store

import "errors"

// Known collection names. Each maps to <name>.json under the data dir and,
// when the mirror is enabled, to a relational table of the same name.
const (
	CollectionUsers       = "users"
	CollectionRoles       = "roles"
	CollectionLimitations = "limitations"
	CollectionThemes      = "themes"
	CollectionCases       = "cases"
	CollectionIndictments = "indictments"
	CollectionAudit       = "audit"
)

// Collections lists every collection eligible for mirror sync, in a stable order.
var Collections = []string{
	CollectionUsers,
	CollectionRoles,
	CollectionLimitations,
	CollectionThemes,
	CollectionCases,
	CollectionIndictments,
	CollectionAudit,
}

// ErrNotFound is returned by FindByID and Update when no record matches the id.
var ErrNotFound = errors.New("record not found")

// Record is anything the store can persist. RecordID must be unique within
// a collection; the store itself does not enforce uniqueness on Insert.
type Record interface {
	RecordID() string
}
