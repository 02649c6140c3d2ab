package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Collection is a typed accessor over one JSON-array collection file.
// All mutating operations read the whole file, modify the slice in memory
// and atomically replace the file (write temp + rename). Concurrent writers
// race; the later write wins.
type Collection[T Record] struct {
	dir  string
	name string
}

// NewCollection binds a typed collection to <dir>/<name>.json.
func NewCollection[T Record](dir, name string) *Collection[T] {
	return &Collection[T]{dir: dir, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) path() string {
	return filepath.Join(c.dir, c.name+".json")
}

// Scan returns all records in insertion order. A missing or unreadable
// backing file yields an empty slice, never an error.
func (c *Collection[T]) Scan() []T {
	data, err := os.ReadFile(c.path())
	if err != nil {
		return []T{}
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return []T{}
	}
	if recs == nil {
		recs = []T{}
	}
	return recs
}

// load reads the collection for a read-modify-write cycle. Unlike Scan it
// refuses to treat an undecodable file as empty: the write that follows
// would replace the file and destroy every prior record. A missing or
// zero-length file still yields an empty slice.
func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode %s: refusing to overwrite undecodable collection: %w", c.name, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

// FindByID linearly scans for a record with the given id.
func (c *Collection[T]) FindByID(id string) (T, error) {
	for _, rec := range c.Scan() {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
}

// Insert appends a record. Uniqueness of the id is the caller's concern.
func (c *Collection[T]) Insert(rec T) error {
	recs, err := c.load()
	if err != nil {
		return err
	}
	return c.Replace(append(recs, rec))
}

// Update replaces the record whose id matches. Returns ErrNotFound when no
// record matches; a no-op success is never assumed.
func (c *Collection[T]) Update(id string, rec T) error {
	recs, err := c.load()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].RecordID() == id {
			recs[i] = rec
			return c.Replace(recs)
		}
	}
	return fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
}

// Delete removes the record whose id matches. Deleting an absent id is a
// successful no-op (idempotent), and skips the file write entirely.
func (c *Collection[T]) Delete(id string) error {
	recs, err := c.load()
	if err != nil {
		return err
	}
	for i := range recs {
		if recs[i].RecordID() == id {
			return c.Replace(append(recs[:i], recs[i+1:]...))
		}
	}
	return nil
}

// Replace persists the given records as the entire collection. Used by the
// mutating operations above and by maintenance jobs that rewrite wholesale.
func (c *Collection[T]) Replace(recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, c.name+"-*.json")
	if err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	if err := os.Rename(tmp.Name(), c.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", c.name, err)
	}
	return nil
}

// RawScan returns the raw JSON documents of a collection file without
// binding them to a model type. The mirror sync uses it so that one job can
// walk every collection regardless of record shape.
func RawScan(dir, name string) []json.RawMessage {
	data, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err != nil {
		return nil
	}
	var recs []json.RawMessage
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil
	}
	return recs
}
