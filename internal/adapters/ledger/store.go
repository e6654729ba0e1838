// Package ledger persists synchronization runs and per-asset results in a
// SQLite database.
package ledger

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL DEFAULT 0,
	processed   INTEGER NOT NULL DEFAULT 0,
	uploaded    INTEGER NOT NULL DEFAULT 0,
	duplicates  INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	total       INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS entries (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	fingerprint    TEXT NOT NULL,
	url            TEXT NOT NULL,
	canonical_name TEXT NOT NULL,
	outcome        TEXT NOT NULL,
	final_name     TEXT NOT NULL DEFAULT '',
	digest         TEXT NOT NULL DEFAULT '',
	size           INTEGER NOT NULL DEFAULT 0,
	error          TEXT NOT NULL DEFAULT '',
	recorded_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_fingerprint ON entries(fingerprint);
`

// Store implements ports.Ledger. The database is opened on first use.
type Store struct {
	path string

	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a Store backed by the database file at path. The special
// path ":memory:" keeps the ledger in memory.
func NewStore(path string) *Store {
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	return &Store{path: path, now: time.Now}
}

func (s *Store) open() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	if s.path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerOpenFailed.Error()), "path", s.path)
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerOpenFailed.Error()), "path", s.path)
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLedgerOpenFailed.Error()), "path", s.path)
	}
	s.db = db
	return db, nil
}

// BeginRun inserts a new run labelled label and returns its id.
func (s *Store) BeginRun(ctx context.Context, label string) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		"INSERT INTO runs (id, label, started_at) VALUES (?, ?, ?)",
		id, label, s.now().UnixNano(),
	)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}
	return id, nil
}

// Record stores entry under runID.
func (s *Store) Record(ctx context.Context, runID string, entry domain.LedgerEntry) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	recorded := entry.RecordedAt
	if recorded.IsZero() {
		recorded = s.now()
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO entries
			(run_id, fingerprint, url, canonical_name, outcome, final_name, digest, size, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, entry.Fingerprint, entry.URL, entry.CanonicalName, entry.Outcome,
		entry.FinalName, entry.Digest, entry.Size, entry.Error, recorded.UnixNano(),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "run", runID)
	}
	return nil
}

// FinishRun stores the final counters of report.
func (s *Store) FinishRun(ctx context.Context, report *domain.Report) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	p := report.Progress
	res, err := db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, uploaded = ?, duplicates = ?, failed = ?, total = ?
		WHERE id = ?`,
		s.now().UnixNano(), p.Processed, p.Uploaded, p.Duplicates, p.Failed, p.Total, report.RunID,
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error()), "run", report.RunID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return zerr.With(domain.ErrLedgerWriteFailed, "run", report.RunID)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, label, started_at, finished_at, processed, uploaded, duplicates, failed, total
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var runs []domain.RunSummary
	for rows.Next() {
		var (
			run              domain.RunSummary
			started, finished int64
		)
		if err := rows.Scan(
			&run.ID, &run.Label, &started, &finished,
			&run.Processed, &run.Uploaded, &run.Duplicates, &run.Failed, &run.Total,
		); err != nil {
			return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
		}
		run.StartedAt = time.Unix(0, started)
		if finished != 0 {
			run.FinishedAt = time.Unix(0, finished)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
	}
	return runs, nil
}

// Entries returns the entries recorded for runID in insertion order.
func (s *Store) Entries(ctx context.Context, runID string) ([]domain.LedgerEntry, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT fingerprint, url, canonical_name, outcome, final_name, digest, size, error, recorded_at
		FROM entries WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var (
			e        domain.LedgerEntry
			recorded int64
		)
		if err := rows.Scan(
			&e.Fingerprint, &e.URL, &e.CanonicalName, &e.Outcome,
			&e.FinalName, &e.Digest, &e.Size, &e.Error, &recorded,
		); err != nil {
			return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
		}
		e.RecordedAt = time.Unix(0, recorded)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
	}
	return entries, nil
}

// Close closes the database if it was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
