// Package store is the persistence layer: a SQLite database holding the
// resource hierarchy plus the profile/household tables and the legacy
// to-do tables. All reads filter soft-deleted rows; all writes go through
// explicit calls here, nothing else touches the database file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/lifeos/pkg/debug"
)

// Common errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrEmptyTitle  = errors.New("title must not be empty")
	ErrBadParent   = errors.New("parent does not exist")
	ErrUnknownType = errors.New("unknown resource type")
)

// timeFormat is how timestamps are stored; RFC3339 keeps the column
// sortable as text.
const timeFormat = time.RFC3339Nano

// Store wraps the SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the database at path and applies the
// schema. The connection uses WAL and the usual read pragmas.
func Open(path string) (*Store, error) {
	start := time.Now()
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each pool connection would otherwise get its own private
		// in-memory database, losing the schema on concurrent use.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			// Non-fatal; the database still works without them.
			continue
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	debug.LogTiming("store.Open", time.Since(start))
	return &Store{db: db, path: path}, nil
}

// OpenMemory opens an in-memory database, used by tests.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LastModified returns the most recent resource update time, or the zero
// time for an empty database.
func (s *Store) LastModified() (time.Time, error) {
	var raw sql.NullString
	err := s.db.QueryRow("SELECT MAX(updated_at) FROM resources").Scan(&raw)
	if err != nil {
		return time.Time{}, err
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeFormat, raw.String)
}

func now() string {
	return time.Now().UTC().Format(timeFormat)
}

func parseTime(raw sql.NullString) time.Time {
	if !raw.Valid {
		return time.Time{}
	}
	t, err := time.Parse(timeFormat, raw.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
