// Package postgres provides a Postgres-backed persistent store mirroring the
// in-memory semantics. State is snapshotted into a JSONB bucket table after
// every successful transaction.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"suinocore/internal/infra/persistence/memory"
	"suinocore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	driverName = "pgx"
	defaultDSN = "postgres://localhost/suinocore?sslmode=disable"
)

// Store persists state to Postgres while reusing the in-memory
// implementation for transactions.
type Store struct {
	*memory.Store
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back
// to defaultDSN), ensures the state table exists, and hydrates the in-memory
// store from any existing snapshot.
func NewStore(dsn string, engine *domain.RulesEngine) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, domain.StorageError{Op: "open", Path: dsn, Err: err}
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, domain.StorageError{Op: "ping", Err: err}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, domain.StorageError{Op: "migrate", Err: err}
	}
	snap, err := loadSnapshot(ctx, db)
	if err != nil {
		return nil, err
	}
	mem := memory.NewStore(engine)
	mem.ImportState(snap)
	return &Store{Store: mem, db: db}, nil
}

func loadSnapshot(ctx context.Context, db *sql.DB) (memory.Snapshot, error) {
	rows, err := db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return memory.Snapshot{}, domain.StorageError{Op: "select", Err: err}
	}
	defer func() { _ = rows.Close() }()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return memory.Snapshot{}, domain.StorageError{Op: "scan", Err: err}
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return memory.Snapshot{}, domain.StorageError{Op: "select", Err: err}
	}

	var snap memory.Snapshot
	for _, b := range memory.Buckets() {
		data, ok := payloads[b.Name]
		if !ok || len(data) == 0 {
			continue
		}
		if err := b.Unmarshal(data, &snap); err != nil {
			return memory.Snapshot{}, domain.StorageError{Op: "decode", Err: fmt.Errorf("bucket %s: %w", b.Name, err)}
		}
	}
	return snap, nil
}

func (s *Store) persist(ctx context.Context) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.ExportState()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageError{Op: "begin", Err: err}
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range memory.Buckets() {
		data, err := b.Marshal(snap)
		if err != nil {
			retErr = domain.StorageError{Op: "encode", Err: fmt.Errorf("bucket %s: %w", b.Name, err)}
			return retErr
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES($1,$2)
			ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload`, b.Name, data); err != nil {
			retErr = domain.StorageError{Op: "upsert", Err: fmt.Errorf("bucket %s: %w", b.Name, err)}
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.StorageError{Op: "commit", Err: err}
	}
	return nil
}

// RunInTransaction applies fn through the in-memory store, then snapshots to
// Postgres when the transaction commits.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(ctx); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
