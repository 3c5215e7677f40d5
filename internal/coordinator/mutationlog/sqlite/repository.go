// Package sqlite is the SQLite-backed mutation journal.
//
// WAL mode is enabled on Open so that journal writes from request
// goroutines never block readers.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog"

	// pure-Go driver, no CGO
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a mutation has no entries.
var ErrNotFound = mutationlog.ErrNotFound

const schema = `
CREATE TABLE IF NOT EXISTS mutation_log (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    mutation_id     TEXT        NOT NULL,
    name            TEXT        NOT NULL,
    status          TEXT        NOT NULL,
    subject         TEXT        NOT NULL DEFAULT '',
    -- JSON input, written on APPLIED only
    payload         TEXT,
    error_messages  TEXT        NOT NULL DEFAULT '[]',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',
    -- RFC3339 as TEXT
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mutation_log_mutation_id ON mutation_log(mutation_id, updated_at);
CREATE INDEX IF NOT EXISTS idx_mutation_log_trace_id ON mutation_log(trace_id);
`

// Repository implements mutationlog.Repository and mutationlog.Reader.
type Repository struct {
	db *sql.DB
}

var (
	_ mutationlog.Repository = (*Repository)(nil)
	_ mutationlog.Reader     = (*Repository)(nil)
)

// Open opens (or creates) the database at path and applies the schema.
// The parent directory is created when missing.
//
//	repo, err := sqlite.Open("./data/journal.db")
func Open(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir for %q: %w", path, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *mutationlog.Entry) error {
	const q = `
		INSERT INTO mutation_log
			(mutation_id, name, status, subject, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.MutationID,
		entry.Name,
		string(entry.Status),
		entry.Subject,
		nullableString(entry.Payload),
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save entry for %q: %w", entry.MutationID, err)
	}
	return nil
}

// GetLatest returns the most recent entry of a mutation.
func (r *Repository) GetLatest(ctx context.Context, mutationID string) (*mutationlog.Entry, error) {
	const q = `
		SELECT mutation_id, name, status, subject, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   mutation_log
		WHERE  mutation_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, mutationID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, mutationID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", mutationID, err)
	}
	return entry, nil
}

// History returns every entry of a mutation, oldest first.
func (r *Repository) History(ctx context.Context, mutationID string) ([]mutationlog.Entry, error) {
	const q = `
		SELECT mutation_id, name, status, subject, COALESCE(payload,''), error_messages,
		       trace_id, span_id, updated_at
		FROM   mutation_log
		WHERE  mutation_id = ?
		ORDER  BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, mutationID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", mutationID, err)
	}
	defer rows.Close()

	var out []mutationlog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: history for %q: %w", mutationID, err)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", mutationID, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, mutationID)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*mutationlog.Entry, error) {
	var entry mutationlog.Entry
	var updatedAt string
	if err := s.Scan(
		&entry.MutationID,
		&entry.Name,
		&entry.Status,
		&entry.Subject,
		&entry.Payload,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	t, err := parseRFC3339(updatedAt)
	if err != nil {
		return nil, err
	}
	entry.UpdatedAt = t
	return &entry, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// nullableString stores NULL instead of an empty payload.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
