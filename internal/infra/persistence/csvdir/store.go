// Package csvdir persists the in-memory transactional store as one CSV file
// per table inside a data directory. The layout matches the farm's existing
// spreadsheets, so the files remain directly usable outside the system.
package csvdir

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"suinocore/internal/infra/persistence/memory"
	"suinocore/pkg/domain"
)

const (
	lockFileName       = ".lock"
	generationFileName = ".generation"

	defaultLockTimeout = 5 * time.Second
	defaultLockPoll    = 50 * time.Millisecond
	defaultLockRetries = 3
)

// Options tune the directory lock protocol. Zero values select defaults.
type Options struct {
	// LockTimeout bounds how long one acquisition attempt polls for the lock.
	LockTimeout time.Duration
	// LockPoll is the interval between polls within an attempt.
	LockPoll time.Duration
	// LockRetries is the number of acquisition attempts before giving up
	// with a ConflictError.
	LockRetries int
}

func (o Options) withDefaults() Options {
	if o.LockTimeout <= 0 {
		o.LockTimeout = defaultLockTimeout
	}
	if o.LockPoll <= 0 {
		o.LockPoll = defaultLockPoll
	}
	if o.LockRetries <= 0 {
		o.LockRetries = defaultLockRetries
	}
	return o
}

// Store wraps the in-memory store and rewrites every table file after each
// successful transaction. Transactions hold an exclusive directory lock, and
// a generation token detects writes made by other processes between
// transactions so the in-memory state is reloaded before mutating.
type Store struct {
	*memory.Store
	mu         sync.Mutex
	dir        string
	opts       Options
	generation string
}

// NewStore opens (or initializes) the data directory and hydrates the
// in-memory state from the table files found there.
func NewStore(dir string, engine *domain.RulesEngine, opts Options) (*Store, error) {
	if dir == "" {
		dir = "dados"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	s := &Store{
		Store: memory.NewStore(engine),
		dir:   dir,
		opts:  opts.withDefaults(),
	}
	snap, err := loadSnapshot(dir)
	if err != nil {
		return nil, err
	}
	s.ImportState(snap)
	gen, err := readGeneration(dir)
	if err != nil {
		return nil, err
	}
	s.generation = gen
	return s, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// RunInTransaction acquires the directory lock, refreshes state if another
// process committed since the last transaction, applies the function through
// the in-memory store, and persists all tables before releasing the lock.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	release, err := s.acquireLock(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	defer release()

	if err := s.refreshLocked(); err != nil {
		return domain.Result{}, err
	}

	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}

	if err := persistSnapshot(s.dir, s.ExportState()); err != nil {
		return res, err
	}
	gen := newGenerationToken()
	if err := writeGeneration(s.dir, gen); err != nil {
		return res, err
	}
	s.generation = gen
	return res, nil
}

// refreshLocked reloads the table files when the on-disk generation no longer
// matches the one this store last observed. Caller holds the directory lock.
func (s *Store) refreshLocked() error {
	gen, err := readGeneration(s.dir)
	if err != nil {
		return err
	}
	if gen == s.generation {
		return nil
	}
	snap, err := loadSnapshot(s.dir)
	if err != nil {
		return err
	}
	s.ImportState(snap)
	s.generation = gen
	return nil
}

// acquireLock takes the directory lock file. Each attempt polls for up to
// LockTimeout; after LockRetries exhausted attempts the caller receives a
// ConflictError naming the attempt count.
func (s *Store) acquireLock(ctx context.Context) (func(), error) {
	path := filepath.Join(s.dir, lockFileName)
	for attempt := 1; attempt <= s.opts.LockRetries; attempt++ {
		deadline := time.Now().Add(s.opts.LockTimeout)
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
			if err == nil {
				fmt.Fprintf(f, "%d\n", os.Getpid())
				if cErr := f.Close(); cErr != nil {
					_ = os.Remove(path)
					return nil, domain.StorageError{Op: "lock", Path: path, Err: cErr}
				}
				return func() { _ = os.Remove(path) }, nil
			}
			if !errors.Is(err, fs.ErrExist) {
				return nil, domain.StorageError{Op: "lock", Path: path, Err: err}
			}
			if !time.Now().Before(deadline) {
				break
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.opts.LockPoll):
			}
		}
	}
	return nil, domain.ConflictError{Attempts: s.opts.LockRetries}
}

func readGeneration(dir string) (string, error) {
	path := filepath.Join(dir, generationFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", domain.StorageError{Op: "read", Path: path, Err: err}
	}
	return strings.TrimSpace(string(data)), nil
}

func writeGeneration(dir, gen string) error {
	path := filepath.Join(dir, generationFileName)
	tmp, err := os.CreateTemp(dir, "generation-*.tmp")
	if err != nil {
		return domain.StorageError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.WriteString(gen + "\n"); err != nil {
		tmp.Close()
		return domain.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return domain.StorageError{Op: "close", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return domain.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

func newGenerationToken() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("t%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
