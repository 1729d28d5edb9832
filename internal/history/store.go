package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Outcome records how a submission resolved.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one recorded submission.
type Entry struct {
	ID           int64
	URL          string
	JobID        string
	Outcome      Outcome
	Filename     string
	ErrorMessage string
	SubmittedAt  time.Time
	ResolvedAt   *time.Time
}

// Store persists the local submission history backed by SQLite. Several CLI
// invocations may touch the same database, so migrations run under a file
// lock and writes rely on a busy timeout.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrateLocked(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// migrateLocked serializes schema migration across processes with a lock
// file next to the database.
func (s *Store) migrateLocked(ctx context.Context) error {
	lock := flock.New(s.path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return errors.New("history database is locked by another process")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	return s.applyMigrations(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add records a freshly accepted submission and returns its row id.
func (s *Store) Add(ctx context.Context, url, jobID string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO submissions (url, job_id, outcome, submitted_at) VALUES (?, ?, ?, ?)`,
		url,
		nullableString(jobID),
		OutcomeSubmitted,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// RecordOutcome marks the most recent entry for jobID as resolved. Unknown
// job ids are ignored so a re-followed job never fails the caller.
func (s *Store) RecordOutcome(ctx context.Context, jobID string, outcome Outcome, filename, errorMessage string) error {
	if jobID == "" {
		return errors.New("job id is empty")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE submissions
         SET outcome = ?, filename = ?, error_message = ?, resolved_at = ?
         WHERE id = (SELECT id FROM submissions WHERE job_id = ? ORDER BY id DESC LIMIT 1)`,
		outcome,
		nullableString(filename),
		nullableString(errorMessage),
		now,
		jobID,
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, url, job_id, outcome, filename, error_message, submitted_at, resolved_at
         FROM submissions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		id           int64
		url          string
		jobID        sql.NullString
		outcome      string
		filename     sql.NullString
		errorMessage sql.NullString
		submittedRaw string
		resolvedRaw  sql.NullString
	)
	if err := scanner.Scan(&id, &url, &jobID, &outcome, &filename, &errorMessage, &submittedRaw, &resolvedRaw); err != nil {
		return Entry{}, fmt.Errorf("scan submission: %w", err)
	}

	entry := Entry{
		ID:           id,
		URL:          url,
		JobID:        jobID.String,
		Outcome:      Outcome(outcome),
		Filename:     filename.String,
		ErrorMessage: errorMessage.String,
	}
	if submitted, err := time.Parse(time.RFC3339Nano, submittedRaw); err == nil {
		entry.SubmittedAt = submitted
	}
	if resolvedRaw.Valid {
		if resolved, err := time.Parse(time.RFC3339Nano, resolvedRaw.String); err == nil {
			entry.ResolvedAt = &resolved
		}
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
