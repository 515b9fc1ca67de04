package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/madlig/mygameon/schema"
)

// getCreateIndexQuery returns the CREATE TABLE query for mygameon_search_index.
func getCreateIndexQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(indexTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				object_id VARCHAR(255) PRIMARY KEY,
				tags TEXT NOT NULL,
				indexed_at DATETIME(6) NOT NULL
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				object_id TEXT PRIMARY KEY,
				tags TEXT NOT NULL,
				indexed_at TIMESTAMPTZ NOT NULL
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				object_id TEXT PRIMARY KEY,
				tags TEXT NOT NULL,
				indexed_at TEXT NOT NULL
			);
		`, quoted)
	}
}

// getIndexUpsertQuery returns the UPSERT query for mygameon_search_index.
func getIndexUpsertQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(indexTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (object_id, tags, indexed_at) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE tags = new.tags, indexed_at = new.indexed_at`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (object_id, tags, indexed_at) VALUES ($1, $2, $3)
			ON CONFLICT (object_id) DO UPDATE SET tags = EXCLUDED.tags, indexed_at = EXCLUDED.indexed_at`, quoted)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (object_id, tags, indexed_at) VALUES (?, ?, ?)`, quoted)
	}
}

// PartialUpdateObjects writes the tags attribute of each object in one
// transaction, creating objects that do not exist yet.
func (cs *CatalogStoreImpl) PartialUpdateObjects(ctx context.Context, updates []schema.IndexUpdate) error {
	if cs.disabled() || len(updates) == 0 {
		return nil
	}

	query := getIndexUpsertQuery(cs.backend)
	indexedAt := formatTime(cs.now(), cs.backend)
	return cs.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare index update: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, u := range updates {
			if u.ObjectID == "" {
				return fmt.Errorf("index update is missing an object ID")
			}
			tags, err := encodeList(u.Tags)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, u.ObjectID, tags, indexedAt); err != nil {
				return fmt.Errorf("failed to update index object %q: %w", u.ObjectID, err)
			}
		}
		return nil
	})
}

// DeleteObjects removes objects from the index by ID.
func (cs *CatalogStoreImpl) DeleteObjects(ctx context.Context, objectIDs []string) error {
	if cs.disabled() {
		return nil
	}
	_, err := cs.deleteByID(ctx, indexTable, objectIDs)
	return err
}

// indexedTags returns the tags attribute of every indexed object.
func (cs *CatalogStoreImpl) indexedTags(ctx context.Context) (map[string][]string, error) {
	result := make(map[string][]string)
	if cs.disabled() {
		return result, nil
	}

	query := fmt.Sprintf("SELECT object_id, tags FROM %s", quoteTableName(indexTable, cs.backend))
	rows, err := cs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query search index: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan index object: %w", err)
		}
		tags, err := decodeList(raw)
		if err != nil {
			return nil, fmt.Errorf("bad tags for index object %q: %w", id, err)
		}
		result[id] = tags
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search index: %w", err)
	}
	return result, nil
}

// indexDrift counts games whose indexed tags do not match the catalog,
// including games missing from the index, plus orphaned index objects.
func (cs *CatalogStoreImpl) indexDrift(ctx context.Context) (int, error) {
	indexed, err := cs.indexedTags(ctx)
	if err != nil {
		return 0, err
	}
	games, err := cs.ListGames(ctx)
	if err != nil {
		return 0, err
	}

	stale := 0
	for _, g := range games {
		tags, ok := indexed[g.ObjectID]
		if !ok || !slices.Equal(tags, g.Tags) {
			stale++
		}
		delete(indexed, g.ObjectID)
	}
	return stale + len(indexed), nil
}
