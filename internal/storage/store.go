package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrRevisionConflict = errors.New("revision conflict")
)

// Storer is a keyed document store. Get returns ErrNotFound for unknown ids.
type Storer[T ValidatingSpec] interface {
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) (map[string]T, error)
	Save(ctx context.Context, id string, v T) error
}

// FileStore keeps one JSON asset per record under a directory and serves
// reads from an in-memory cache.
type FileStore[T ValidatingSpec] struct {
	path    string
	records map[string]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	s := &FileStore[T]{
		path:    path,
		records: map[string]T{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[string]T{}

	return filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := s.loadAsset(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}

		err = asset.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		id := asset.Id().String()
		if _, ok := s.records[id]; ok {
			return fmt.Errorf("duplicate key detected: %s", id)
		}

		s.records[id] = asset.Spec
		return nil
	})
}

// Save writes the record to disk and then updates the cache. If v is
// Revisioned, the save is rejected with ErrRevisionConflict unless its
// revision matches the cached record, and the revision is bumped on success.
func (s *FileStore[T]) Save(_ context.Context, id string, v T) error {
	if err := ValidateIdentifier(id); err != nil {
		return err
	}
	if isNil(v) {
		return fmt.Errorf("saving %s: record is nil", id)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rv, revisioned := any(v).(Revisioned)
	var prev int64
	if revisioned {
		prev = rv.Revision()
		var current int64
		if cur, ok := s.records[id]; ok {
			current = any(cur).(Revisioned).Revision()
		}
		if current != prev {
			return fmt.Errorf("%w: %s has revision %d, save was based on %d", ErrRevisionConflict, id, current, prev)
		}
		rv.SetRevision(prev + 1)
	}

	asset := &Asset[T]{
		Version:    1,
		Identifier: Identifier(id),
		Spec:       v,
	}

	jsonData, err := json.Marshal(asset)
	if err != nil {
		if revisioned {
			rv.SetRevision(prev)
		}
		return fmt.Errorf("marshalling json: %w", err)
	}

	err = atomicWrite(s.filePath(id), jsonData, 0644)
	if err != nil {
		if revisioned {
			rv.SetRevision(prev)
		}
		return err
	}

	s.records[id] = v
	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Get returns the cached record. Callers must not mutate it; clone first.
func (s *FileStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.records[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return val, nil
}

func (s *FileStore[T]) GetAll(_ context.Context) (map[string]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}

	return vals, nil
}

func (s *FileStore[T]) filePath(id string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s.json", id))
}

func (s *FileStore[T]) loadAsset(path string) (*Asset[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	jsonData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = json.Unmarshal(jsonData, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}
