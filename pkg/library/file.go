package library

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/maskforge/maskforge/pkg/errors"
)

// FileStore is a file-based design store for CLI usage.
// Records are stored as JSON files, one per record, in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create library dir")
	}
	return &FileStore{dir: dir}, nil
}

// recordPath maps an ID to its file. Only uuid-shaped IDs can name record
// files, so arbitrary paths never reach the filesystem.
func (s *FileStore) recordPath(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.New(errors.ErrCodeNotFound, "design %q not found", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Put stores a record, replacing any record with the same ID.
func (s *FileStore) Put(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(rec.ID)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidParameter, "record ID %q is not a uuid", rec.ID)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal record %s", rec.ID)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write record %s", rec.ID)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *FileStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.recordPath(id)
	if err != nil {
		return Record{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Record{}, errors.New(errors.ErrCodeNotFound, "design %q not found", id)
	}
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "read record %s", id)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "parse record %s", id)
	}
	return rec, nil
}

// List returns all records, newest first.
func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read library dir")
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.recordPath(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeNotFound, "design %q not found", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove record %s", id)
	}
	return nil
}

// Close does nothing for file stores.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for record files.
func (s *FileStore) Path() string {
	return s.dir
}

var _ Store = (*FileStore)(nil)
