// Package store persists the catalog, the request board and the run history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// Table names for the catalog database.
const (
	gamesTable    = "mygameon_games"
	requestsTable = "mygameon_requests"
	indexTable    = "mygameon_search_index"
)

var catalogTables = []string{gamesTable, requestsTable, indexTable}

// CatalogStoreImpl keeps games, requests and the search index mirror in one database.
type CatalogStoreImpl struct {
	db        *sql.DB
	backend   schema.DatabaseBackend
	connStr   string
	now       func() time.Time
	closeOnce sync.Once
	closeErr  error
}

// Compile-time checks
var (
	_ contract.CatalogStore = &CatalogStoreImpl{}
	_ contract.RequestStore = &CatalogStoreImpl{}
	_ contract.SearchIndex  = &CatalogStoreImpl{}
)

// NewCatalogStore initializes the catalog database for the given backend.
// The none backend returns a store that accepts writes and reads nothing.
func NewCatalogStore(backend schema.DatabaseBackend, connStr string) (*CatalogStoreImpl, error) {
	for _, table := range catalogTables {
		if err := validateTableName(table); err != nil {
			return nil, err
		}
	}

	if backend == schema.NoneBackend {
		return &CatalogStoreImpl{backend: backend, connStr: connStr, now: time.Now}, nil
	}

	db, err := openDB(backend, connStr, contract.GetCatalogDBFilePath())
	if err != nil {
		return nil, err
	}

	tables := map[string]string{
		gamesTable:    getCreateGamesQuery(backend),
		requestsTable: getCreateRequestsQuery(backend),
		indexTable:    getCreateIndexQuery(backend),
	}
	if err := createTables(db, tables, catalogTables); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &CatalogStoreImpl{db: db, backend: backend, connStr: connStr, now: time.Now}, nil
}

// getCreateGamesQuery returns the CREATE TABLE query for mygameon_games.
func getCreateGamesQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(gamesTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				object_id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(512) NOT NULL,
				genre TEXT NOT NULL,
				tags TEXT NOT NULL,
				size_gb DOUBLE NOT NULL,
				updated_at DATETIME(6) NOT NULL
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				object_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				genre TEXT NOT NULL,
				tags TEXT NOT NULL,
				size_gb DOUBLE PRECISION NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				object_id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				genre TEXT NOT NULL,
				tags TEXT NOT NULL,
				size_gb REAL NOT NULL,
				updated_at TEXT NOT NULL
			);
		`, quoted)
	}
}

// getGamesUpsertQuery returns the UPSERT query for mygameon_games.
func getGamesUpsertQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(gamesTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (object_id, name, genre, tags, size_gb, updated_at) VALUES (?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, genre = new.genre, tags = new.tags, size_gb = new.size_gb, updated_at = new.updated_at`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (object_id, name, genre, tags, size_gb, updated_at) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (object_id) DO UPDATE SET name = EXCLUDED.name, genre = EXCLUDED.genre, tags = EXCLUDED.tags, size_gb = EXCLUDED.size_gb, updated_at = EXCLUDED.updated_at`, quoted)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (object_id, name, genre, tags, size_gb, updated_at) VALUES (?, ?, ?, ?, ?, ?)`, quoted)
	}
}

// disabled reports whether the store is a no-op.
func (cs *CatalogStoreImpl) disabled() bool {
	return cs.backend == schema.NoneBackend || cs.db == nil
}

// UpsertGames inserts or replaces the given games in one transaction.
func (cs *CatalogStoreImpl) UpsertGames(ctx context.Context, games []schema.Game) (int, error) {
	if cs.disabled() || len(games) == 0 {
		return 0, nil
	}

	query := getGamesUpsertQuery(cs.backend)
	written := 0
	err := cs.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare game upsert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, g := range games {
			genre, err := encodeList(g.Genre)
			if err != nil {
				return err
			}
			tags, err := encodeList(g.Tags)
			if err != nil {
				return err
			}
			updatedAt := g.UpdatedAt
			if updatedAt.IsZero() {
				updatedAt = cs.now()
			}
			if _, err := stmt.ExecContext(ctx, g.ObjectID, g.Name, genre, tags, g.SizeGB, formatTime(updatedAt, cs.backend)); err != nil {
				return fmt.Errorf("failed to upsert game %q: %w", g.ObjectID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// DeleteGames removes games by object ID and returns how many existed.
func (cs *CatalogStoreImpl) DeleteGames(ctx context.Context, objectIDs []string) (int, error) {
	if cs.disabled() {
		return 0, nil
	}
	return cs.deleteByID(ctx, gamesTable, objectIDs)
}

// ListGames returns every game ordered by object ID.
func (cs *CatalogStoreImpl) ListGames(ctx context.Context) ([]schema.Game, error) {
	if cs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT object_id, name, genre, tags, size_gb, updated_at FROM %s ORDER BY object_id", quoteTableName(gamesTable, cs.backend))
	rows, err := cs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var games []schema.Game
	for rows.Next() {
		var g schema.Game
		var genre, tags string
		updated := &timeScanner{dst: &g.UpdatedAt}
		if err := rows.Scan(&g.ObjectID, &g.Name, &genre, &tags, &g.SizeGB, updated); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		if g.Genre, err = decodeList(genre); err != nil {
			return nil, fmt.Errorf("bad genre for %q: %w", g.ObjectID, err)
		}
		if g.Tags, err = decodeList(tags); err != nil {
			return nil, fmt.Errorf("bad tags for %q: %w", g.ObjectID, err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}
	return games, nil
}

// Close closes the underlying DB connection.
func (cs *CatalogStoreImpl) Close() error {
	cs.closeOnce.Do(func() {
		if cs.db != nil {
			cs.closeErr = cs.db.Close()
		}
	})
	return cs.closeErr
}

// GetStatus returns status information about the catalog database.
func (cs *CatalogStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(cs.backend),
		Connected:  cs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if cs.disabled() {
		return status, nil
	}

	for _, table := range catalogTables {
		var count int64
		row := cs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, cs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalGames = int(status.TableSizes[gamesTable])
	status.TotalRequests = int(status.TableSizes[requestsTable])
	status.IndexedObjects = int(status.TableSizes[indexTable])
	status.TableSizeBytes = cs.tableBytes()

	if status.TotalGames+status.IndexedObjects > 0 {
		stale, err := cs.indexDrift(context.Background())
		if err != nil {
			return status, err
		}
		status.StaleIndexObjects = stale
	}

	if status.TotalGames == 0 {
		return status, nil
	}

	quoted := quoteTableName(gamesTable, cs.backend)
	row := cs.db.QueryRow(fmt.Sprintf("SELECT MAX(updated_at), MIN(updated_at) FROM %s", quoted))
	if err := row.Scan(&timeScanner{dst: &status.LastUpdateTime}, &timeScanner{dst: &status.OldestEntryTime}); err != nil {
		return status, fmt.Errorf("failed to get update times: %w", err)
	}

	return status, nil
}

// tableBytes estimates the on-disk size of the games table.
func (cs *CatalogStoreImpl) tableBytes() int64 {
	if cs.disabled() {
		return 0
	}
	var size int64
	switch cs.backend {
	case schema.SQLiteBackend:
		row := cs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return 0
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(cs.connStr)
		if err != nil || cfg.DBName == "" {
			return 0
		}
		row := cs.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, gamesTable)
		if err := row.Scan(&size); err != nil {
			return 0
		}
	case schema.PostgreSQLBackend:
		row := cs.db.QueryRow("SELECT pg_total_relation_size($1)", gamesTable)
		if err := row.Scan(&size); err != nil {
			return 0
		}
	}
	return size
}

// withTx runs fn inside a transaction, committing on success.
func (cs *CatalogStoreImpl) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := cs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// deleteByID removes rows keyed by object_id or request_id from table.
func (cs *CatalogStoreImpl) deleteByID(ctx context.Context, table string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	key := "object_id"
	if table == requestsTable {
		key = "request_id"
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", quoteTableName(table, cs.backend), key, placeholder(cs.backend, 1))

	deleted := 0
	err := cs.withTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			res, err := tx.ExecContext(ctx, query, id)
			if err != nil {
				return fmt.Errorf("failed to delete %q from %s: %w", id, table, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			deleted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// encodeList stores a string list as a JSON array. nil becomes "[]".
func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

// decodeList reverses encodeList.
func decodeList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}
