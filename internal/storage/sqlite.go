package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const documentSchema = `
CREATE TABLE IF NOT EXISTS documents (
    kind       TEXT NOT NULL,
    id         TEXT NOT NULL,
    revision   INTEGER NOT NULL DEFAULT 0,
    spec       TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (kind, id)
);
`

// OpenSQLite opens a SQLite database connection, configures pragmas and
// ensures the document table exists.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(documentSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

// SQLiteStore keeps JSON documents of one kind in the shared documents table.
// Reads always go to the database, so every Get returns a fresh copy.
type SQLiteStore[T ValidatingSpec] struct {
	db   *sql.DB
	kind string
}

func NewSQLiteStore[T ValidatingSpec](db *sql.DB, kind string) *SQLiteStore[T] {
	return &SQLiteStore[T]{db: db, kind: kind}
}

func (s *SQLiteStore[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT spec FROM documents WHERE kind = ? AND id = ?`,
		s.kind, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return zero, fmt.Errorf("querying %s %s: %w", s.kind, id, err)
	}

	return s.decode(id, raw)
}

func (s *SQLiteStore[T]) GetAll(ctx context.Context) (map[string]T, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, spec FROM documents WHERE kind = ? ORDER BY id`,
		s.kind,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.kind, err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string]T{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", s.kind, err)
		}
		v, err := s.decode(id, raw)
		if err != nil {
			return nil, err
		}
		out[id] = v
	}

	return out, rows.Err()
}

// Save upserts the document. Revisioned documents are written only if the
// stored revision still matches, and the revision is bumped on success.
func (s *SQLiteStore[T]) Save(ctx context.Context, id string, v T) error {
	if err := ValidateIdentifier(id); err != nil {
		return err
	}
	if isNil(v) {
		return fmt.Errorf("saving %s: record is nil", id)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current int64
	err = tx.QueryRowContext(ctx,
		`SELECT revision FROM documents WHERE kind = ? AND id = ?`,
		s.kind, id,
	).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("querying revision of %s: %w", id, err)
	}

	rv, revisioned := any(v).(Revisioned)
	var prev int64
	next := current + 1
	if revisioned {
		prev = rv.Revision()
		if current != prev {
			return fmt.Errorf("%w: %s has revision %d, save was based on %d", ErrRevisionConflict, id, current, prev)
		}
		rv.SetRevision(next)
	}

	data, err := json.Marshal(v)
	if err != nil {
		if revisioned {
			rv.SetRevision(prev)
		}
		return fmt.Errorf("marshalling json: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (kind, id, revision, spec, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (kind, id) DO UPDATE SET
			revision = excluded.revision,
			spec = excluded.spec,
			updated_at = excluded.updated_at`,
		s.kind, id, next, string(data),
	)
	if err == nil {
		err = tx.Commit()
	}
	if err != nil {
		if revisioned {
			rv.SetRevision(prev)
		}
		return fmt.Errorf("saving %s %s: %w", s.kind, id, err)
	}

	return nil
}

func (s *SQLiteStore[T]) decode(id, raw string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, fmt.Errorf("unmarshalling %s %s: %w", s.kind, id, err)
	}
	return v, nil
}
