package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores opens the catalog and run tracking stores once per process.
// An empty backend leaves that store unset.
func InitStores(catalogBackend schema.DatabaseBackend, catalogConnStr string, runsBackend schema.DatabaseBackend, runsConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var catalog *CatalogStoreImpl
		if catalogBackend != "" {
			var err error
			catalog, err = NewCatalogStore(catalogBackend, catalogConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize catalog store: %w", err)
				return
			}
		}

		var runs contract.RunStore
		if runsBackend != "" {
			rs, err := NewRunStore(runsBackend, runsConnStr)
			if err != nil {
				if catalog != nil {
					_ = catalog.Close()
				}
				initErr = fmt.Errorf("failed to initialize run store: %w", err)
				return
			}
			runs = rs
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.catalog = catalog
		Manager.runs = runs
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.catalog != nil {
			_ = Manager.catalog.Close()
		}
		if Manager.runs != nil {
			_ = Manager.runs.Close()
		}
	})
}

// ClearCatalog removes the catalog data for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the catalog tables.
func ClearCatalog(backend schema.DatabaseBackend, connStr string) error {
	return clearBackend(backend, connStr, contract.GetCatalogDBFilePath(), catalogTables...)
}

// ClearRuns removes the run tracking data for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the run tables and the migration history.
func ClearRuns(backend schema.DatabaseBackend, connStr string) error {
	return clearBackend(backend, connStr, contract.GetRunsDBFilePath(), scoresTable, runsTable, migrationsTable)
}

func clearBackend(backend schema.DatabaseBackend, connStr, defaultPath string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = defaultPath
		}
		if dbPath == ":memory:" {
			return nil
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, tables...)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}
