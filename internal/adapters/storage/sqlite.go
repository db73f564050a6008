// Package storage provides the SQLite event archive: a queryable copy of
// the session log used for history and export.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
	"modernc.org/sqlite"
)

// sqliteArchive implements the ports.EventArchive interface using SQLite.
type sqliteArchive struct {
	db    *sql.DB
	newID func() string
}

// Ensure sqliteArchive implements ports.EventArchive.
var _ ports.EventArchive = (*sqliteArchive)(nil)

// New opens (or creates) the archive database at dbPath.
func New(dbPath string) (ports.EventArchive, error) {
	return open(dbPath)
}

// NewMemory creates a new in-memory archive for testing.
func NewMemory() (ports.EventArchive, error) {
	return open(":memory:")
}

func open(dbPath string) (*sqliteArchive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 2000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	archive := &sqliteArchive{db: db, newID: uuid.NewString}
	if err := archive.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return archive, nil
}

// Migrate creates the database schema.
func (s *sqliteArchive) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		recorded_unix INTEGER NOT NULL,
		recorded_at TEXT NOT NULL,
		day TEXT NOT NULL,
		task TEXT NOT NULL,
		action TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_recorded ON events(recorded_unix);
	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Append stores one record.
func (s *sqliteArchive) Append(ctx context.Context, entry domain.LogEntry) error {
	query := `
		INSERT INTO events (id, recorded_unix, recorded_at, day, task, action, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		_, err = s.db.ExecContext(ctx, query,
			s.newID(),
			entry.Timestamp.Unix(),
			entry.Timestamp.Format(domain.TimestampLayout),
			entry.Day(),
			entry.Task,
			string(entry.Action),
			entry.DurationSeconds,
		)
		if !isUniqueConstraintError(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to archive event: %w", err)
	}
	return nil
}

// Range returns the records with from <= timestamp < to in insertion order
// within each second. Timestamps are returned in to's location, since from
// may be the zero time.
func (s *sqliteArchive) Range(ctx context.Context, from, to time.Time) ([]domain.LogEntry, error) {
	query := `
		SELECT recorded_unix, task, action, duration_seconds
		FROM events
		WHERE recorded_unix >= ? AND recorded_unix < ?
		ORDER BY recorded_unix, rowid
	`

	rows, err := s.db.QueryContext(ctx, query, from.Unix(), to.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	loc := to.Location()
	var entries []domain.LogEntry
	for rows.Next() {
		var (
			unix     int64
			task     string
			action   string
			duration int
		)
		if err := rows.Scan(&unix, &task, &action, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		entries = append(entries, domain.LogEntry{
			Timestamp:       time.Unix(unix, 0).In(loc),
			Task:            task,
			Action:          domain.Action(action),
			DurationSeconds: duration,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *sqliteArchive) Close() error {
	return s.db.Close()
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == 1555 || sqliteErr.Code() == 2067 // SQLITE_CONSTRAINT_PRIMARYKEY, _UNIQUE
}
