// Package sqlite persists the in-memory store state into a single SQLite
// database, one JSON payload per entity bucket, snapshotted after every
// successful transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"suinocore/internal/infra/persistence/memory"
	"suinocore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// Store wraps the in-memory transactional store with SQLite durability.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the database at path and hydrates the
// in-memory state from it.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "suinocore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, domain.StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, domain.StorageError{Op: "open", Path: path, Err: err}
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, domain.StorageError{Op: "migrate", Path: path, Err: err}
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return domain.StorageError{Op: "select", Path: s.path, Err: err}
	}
	defer func() { _ = rows.Close() }()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return domain.StorageError{Op: "scan", Path: s.path, Err: err}
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return domain.StorageError{Op: "select", Path: s.path, Err: err}
	}
	if len(payloads) == 0 {
		return nil
	}
	var snap memory.Snapshot
	for _, b := range memory.Buckets() {
		data, ok := payloads[b.Name]
		if !ok {
			continue
		}
		if err := b.Unmarshal(data, &snap); err != nil {
			return domain.StorageError{Op: "decode", Path: s.path, Err: fmt.Errorf("bucket %s: %w", b.Name, err)}
		}
	}
	s.ImportState(snap)
	return nil
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return domain.StorageError{Op: "begin", Path: s.path, Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range memory.Buckets() {
		data, err := b.Marshal(snap)
		if err != nil {
			retErr = domain.StorageError{Op: "encode", Path: s.path, Err: fmt.Errorf("bucket %s: %w", b.Name, err)}
			return retErr
		}
		if _, err := tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?)
			ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, b.Name, data); err != nil {
			retErr = domain.StorageError{Op: "upsert", Path: s.path, Err: fmt.Errorf("bucket %s: %w", b.Name, err)}
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.StorageError{Op: "commit", Path: s.path, Err: err}
	}
	return nil
}

// RunInTransaction applies fn through the in-memory store, then snapshots
// state to SQLite when the transaction commits.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
