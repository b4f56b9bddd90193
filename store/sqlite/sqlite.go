/*
Package sqlite provides a SQLite-backed implementation of pos.Store.

PURPOSE:
  Durable home for the session snapshots. One table, one row per snapshot
  key, JSON values - the store knows nothing about the shapes it holds.

MALFORMED VALUES:
  A row whose value no longer decodes into the caller's type is treated
  exactly like a missing key (Load reports false, nil). The engine falls back
  to defaults; a corrupt snapshot must never keep the register from starting.

WAL MODE:
  SQLite is opened with WAL for better crash recovery. Use ":memory:" for an
  in-memory database in tests.

USAGE:
  store, err := sqlite.New("./data/pos.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - pos/store.go: the interface contract
  - pos/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/fusioneats/pos-engine/pos"
)

// Store implements pos.Store on a single SQLite table.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ pos.Store = (*Store)(nil)

// New opens (creating if needed) the database at dbPath and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate database")
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		value_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load decodes the snapshot under key into out. Missing keys and undecodable
// values both report (false, nil); only real database failures surface.
func (s *Store) Load(ctx context.Context, key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value_json FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "load snapshot %q", key)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, nil
	}
	return true, nil
}

// Save upserts the JSON encoding of value under key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode snapshot %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value_json = excluded.value_json,
			updated_at = excluded.updated_at`,
		key, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	return errors.Wrapf(err, "save snapshot %q", key)
}

// Clear removes the snapshot under key. Absent keys are a no-op.
func (s *Store) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key)
	return errors.Wrapf(err, "clear snapshot %q", key)
}
