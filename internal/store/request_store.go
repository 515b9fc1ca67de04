package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/madlig/mygameon/schema"
)

// getCreateRequestsQuery returns the CREATE TABLE query for mygameon_requests.
func getCreateRequestsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(requestsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				request_id VARCHAR(255) PRIMARY KEY,
				title VARCHAR(512) NOT NULL,
				request_count INT NOT NULL,
				estimated_size_gb DOUBLE NOT NULL,
				status VARCHAR(32) NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				request_id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				request_count INT NOT NULL,
				estimated_size_gb DOUBLE PRECISION NOT NULL,
				status TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				request_id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				request_count INTEGER NOT NULL,
				estimated_size_gb REAL NOT NULL,
				status TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, quoted)
	}
}

const requestColumns = "request_id, title, request_count, estimated_size_gb, status, created_at"

// UpsertRequest stores a request keyed by its ID and returns the stored row.
// On an existing row a zero RequestCount adds one vote, a positive count
// replaces it, and size or status are only overwritten when set.
func (cs *CatalogStoreImpl) UpsertRequest(ctx context.Context, req schema.GameRequest) (schema.GameRequest, error) {
	if strings.TrimSpace(req.RequestID) == "" {
		return schema.GameRequest{}, errors.New("request ID cannot be empty")
	}
	if req.RequestCount < 0 {
		return schema.GameRequest{}, fmt.Errorf("request count cannot be negative (received %d)", req.RequestCount)
	}
	if cs.disabled() {
		return newRequest(req, cs), nil
	}

	var stored schema.GameRequest
	err := cs.withTx(ctx, func(tx *sql.Tx) error {
		existing, found, err := cs.getRequest(ctx, tx, req.RequestID)
		if err != nil {
			return err
		}

		quoted := quoteTableName(requestsTable, cs.backend)
		if !found {
			stored = newRequest(req, cs)
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoted, requestColumns, placeholders(cs.backend, 6))
			if _, err := tx.ExecContext(ctx, query, stored.RequestID, stored.Title, stored.RequestCount,
				stored.EstimatedSizeGB, string(stored.Status), formatTime(stored.CreatedAt, cs.backend)); err != nil {
				return fmt.Errorf("failed to insert request %q: %w", stored.RequestID, err)
			}
			return nil
		}

		stored = mergeRequest(existing, req)
		query := fmt.Sprintf("UPDATE %s SET title = %s, request_count = %s, estimated_size_gb = %s, status = %s WHERE request_id = %s",
			quoted,
			placeholder(cs.backend, 1), placeholder(cs.backend, 2), placeholder(cs.backend, 3),
			placeholder(cs.backend, 4), placeholder(cs.backend, 5))
		if _, err := tx.ExecContext(ctx, query, stored.Title, stored.RequestCount, stored.EstimatedSizeGB,
			string(stored.Status), stored.RequestID); err != nil {
			return fmt.Errorf("failed to update request %q: %w", stored.RequestID, err)
		}
		return nil
	})
	if err != nil {
		return schema.GameRequest{}, err
	}
	return stored, nil
}

// ListRequests returns requests with the given status, or all of them when
// status is empty.
func (cs *CatalogStoreImpl) ListRequests(ctx context.Context, status schema.RequestStatus) ([]schema.GameRequest, error) {
	if cs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s", requestColumns, quoteTableName(requestsTable, cs.backend))
	var args []any
	if status != "" {
		query += fmt.Sprintf(" WHERE status = %s", placeholder(cs.backend, 1))
		args = append(args, string(status))
	}
	query += " ORDER BY request_id"

	rows, err := cs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var requests []schema.GameRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}
	return requests, nil
}

// getRequest loads one request inside tx.
func (cs *CatalogStoreImpl) getRequest(ctx context.Context, tx *sql.Tx, requestID string) (schema.GameRequest, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE request_id = %s", requestColumns,
		quoteTableName(requestsTable, cs.backend), placeholder(cs.backend, 1))
	req, err := scanRequest(tx.QueryRowContext(ctx, query, requestID))
	if errors.Is(err, sql.ErrNoRows) {
		return schema.GameRequest{}, false, nil
	}
	if err != nil {
		return schema.GameRequest{}, false, err
	}
	return req, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (schema.GameRequest, error) {
	var req schema.GameRequest
	var status string
	if err := row.Scan(&req.RequestID, &req.Title, &req.RequestCount, &req.EstimatedSizeGB,
		&status, &timeScanner{dst: &req.CreatedAt}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return req, err
		}
		return req, fmt.Errorf("failed to scan request: %w", err)
	}
	req.Status = schema.RequestStatus(status)
	return req, nil
}

// newRequest fills the defaults of a request that is not stored yet.
func newRequest(req schema.GameRequest, cs *CatalogStoreImpl) schema.GameRequest {
	if req.RequestCount < 1 {
		req.RequestCount = 1
	}
	if req.Status == "" {
		req.Status = schema.OpenStatus
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = cs.now()
	}
	return req
}

// mergeRequest applies an incoming request to the stored one.
func mergeRequest(existing, incoming schema.GameRequest) schema.GameRequest {
	merged := existing
	if incoming.Title != "" {
		merged.Title = incoming.Title
	}
	if incoming.RequestCount == 0 {
		merged.RequestCount++
	} else {
		merged.RequestCount = incoming.RequestCount
	}
	if incoming.EstimatedSizeGB > 0 {
		merged.EstimatedSizeGB = incoming.EstimatedSizeGB
	}
	if incoming.Status != "" {
		merged.Status = incoming.Status
	}
	return merged
}
