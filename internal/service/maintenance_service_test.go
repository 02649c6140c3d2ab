package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f fixtures) maintenanceService() MaintenanceService {
	return NewMaintenanceService(f.cases, f.users, f.audit)
}

func date(s string) model.Timestamp {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return model.NewTimestamp(d)
}

func TestNormalizeStatuses(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	require.NoError(t, f.cases.Insert(model.Case{
		ID:     "c1",
		Status: "Offen",
		History: []model.CaseHistoryEntry{
			{Date: date("2023-02-01"), Status: "Offen"},
			{Date: date("2023-05-01"), Status: "In Bearbeitung"},
		},
	}))
	require.NoError(t, f.cases.Insert(model.Case{ID: "c2", Status: "Abgeschlossen"}))
	require.NoError(t, f.cases.Insert(model.Case{ID: "c3", Status: model.CaseStatusOpen}))

	res, err := svc.NormalizeStatuses(adminActor)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Changed) // c1 status + 2 history entries + c2 status
	assert.True(t, res.Written)

	got := f.cases.Scan()
	assert.Equal(t, model.CaseStatusOpen, got[0].Status)
	assert.Equal(t, model.CaseStatusOpen, got[0].History[0].Status)
	assert.Equal(t, model.CaseStatusInProgress, got[0].History[1].Status)
	assert.Equal(t, model.CaseStatusCompleted, got[1].Status)
}

func TestNormalizeStatusesIdempotent(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	require.NoError(t, f.cases.Insert(model.Case{ID: "c1", Status: "Offen"}))

	first, err := svc.NormalizeStatuses(adminActor)
	require.NoError(t, err)
	require.True(t, first.Written)

	second, err := svc.NormalizeStatuses(adminActor)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Changed)
	assert.False(t, second.Written, "second run must detect zero changes and skip the write")
}

func TestCollapseDuplicatesKeepsLatest(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	require.NoError(t, f.users.Insert(model.User{ID: "u1", Username: "jdoe", DateCreated: date("2024-01-01")}))
	require.NoError(t, f.users.Insert(model.User{ID: "u2", Username: "asmith", DateCreated: date("2024-03-01")}))
	require.NoError(t, f.users.Insert(model.User{ID: "u3", Username: "jdoe", DateCreated: date("2024-06-01")}))

	res, err := svc.CollapseDuplicates(adminActor)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	got := f.users.Scan()
	require.Len(t, got, 2)
	for _, u := range got {
		if u.Username == "jdoe" {
			assert.Equal(t, "u3", u.ID, "the newest jdoe record must survive")
		}
	}
}

func TestCollapseDuplicatesLegacyDateFormat(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	// files from the previous system carry bare dates, newer records RFC 3339
	legacy := `[
  {"id": "u1", "username": "jdoe", "date_created": "2024-01-01"},
  {"id": "u2", "username": "jdoe", "date_created": "2024-06-01T00:00:00Z"}
]`
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "users.json"), []byte(legacy), 0o644))

	res, err := svc.CollapseDuplicates(adminActor)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	got := f.users.Scan()
	require.Len(t, got, 1)
	assert.Equal(t, "u2", got[0].ID)
}

func TestCollapseDuplicatesCleanDataNoWrite(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	require.NoError(t, f.users.Insert(model.User{ID: "u1", Username: "jdoe", DateCreated: date("2024-01-01")}))

	res, err := svc.CollapseDuplicates(adminActor)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Removed)
	assert.False(t, res.Written)
}

func TestTimedDeletionPreview(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	require.NoError(t, f.cases.Insert(model.Case{ID: "c1", DateCreated: date("2023-03-15")}))
	require.NoError(t, f.cases.Insert(model.Case{ID: "c2", DateCreated: date("2024-02-01")}))

	res, err := svc.TimedDeletion(TimedDeletionRequest{
		Start: "2023-01-01", End: "2023-12-31", Confirm: false,
	}, adminActor)
	require.NoError(t, err)
	require.Len(t, res.Matched, 1)
	assert.False(t, res.Deleted)

	// preview performs no write
	assert.Len(t, f.cases.Scan(), 2)
}

func TestTimedDeletionConfirmed(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	require.NoError(t, f.cases.Insert(model.Case{ID: "c1", DateCreated: date("2023-03-15")}))
	require.NoError(t, f.cases.Insert(model.Case{ID: "c2", DateCreated: date("2023-12-31")})) // inclusive end
	require.NoError(t, f.cases.Insert(model.Case{ID: "c3", DateCreated: date("2024-02-01")}))

	res, err := svc.TimedDeletion(TimedDeletionRequest{
		Start: "2023-01-01", End: "2023-12-31", Confirm: true,
	}, adminActor)
	require.NoError(t, err)
	assert.Len(t, res.Matched, 2)
	assert.True(t, res.Deleted)

	got := f.cases.Scan()
	require.Len(t, got, 1)
	assert.Equal(t, "c3", got[0].ID)
}

func TestTimedDeletionRejectsBadRange(t *testing.T) {
	f := newFixtures(t)
	svc := f.maintenanceService()

	_, err := svc.TimedDeletion(TimedDeletionRequest{Start: "2023-13-01", End: "2023-12-31"}, adminActor)
	require.Error(t, err)

	_, err = svc.TimedDeletion(TimedDeletionRequest{Start: "2024-01-01", End: "2023-01-01"}, adminActor)
	require.Error(t, err)
}
