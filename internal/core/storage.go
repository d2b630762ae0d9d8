package core

import (
	"fmt"
	"os"

	"suinocore/internal/infra/persistence/csvdir"
	"suinocore/internal/infra/persistence/memory"
	"suinocore/internal/infra/persistence/postgres"
	"suinocore/internal/infra/persistence/sqlite"
	"suinocore/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageCSV      StorageDriver = "csv"      // one CSV file per table
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

type (
	Transaction     = domain.Transaction
	RuleView        = domain.RuleView
	PersistentStore = domain.PersistentStore
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to csv when unset.
//
//	SUINOCORE_STORAGE_DRIVER: memory|csv|sqlite|postgres (default csv)
//	SUINOCORE_DATA_DIR: directory holding the CSV tables (default ./dados)
//	SUINOCORE_SQLITE_PATH: path to sqlite file (default ./suinocore.db)
//	SUINOCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(engine *RulesEngine) (PersistentStore, error) {
	driver := os.Getenv("SUINOCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageCSV)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(engine), nil
	case StorageCSV:
		dir := os.Getenv("SUINOCORE_DATA_DIR")
		return csvdir.NewStore(dir, engine, csvdir.Options{})
	case StorageSQLite:
		path := os.Getenv("SUINOCORE_SQLITE_PATH")
		return sqlite.NewStore(path, engine)
	case StoragePostgres:
		dsn := os.Getenv("SUINOCORE_POSTGRES_DSN")
		return postgres.NewStore(dsn, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
