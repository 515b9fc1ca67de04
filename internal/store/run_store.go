package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// Table names for run tracking.
const (
	runsTable   = "mygameon_priority_runs"
	scoresTable = "mygameon_priority_scores"
)

var runTables = []string{runsTable, scoresTable}

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db        *sql.DB
	m         *migrate.Migrate
	backend   schema.DatabaseBackend
	closeOnce sync.Once
	closeErr  error
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore opens the run tracking database, creates the base tables and
// applies pending schema migrations.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (*RunStoreImpl, error) {
	for _, table := range runTables {
		if err := validateTableName(table); err != nil {
			return nil, err
		}
	}

	if backend == schema.NoneBackend {
		// No-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetRunsDBFilePath())
	if err != nil {
		return nil, err
	}

	tables := map[string]string{
		runsTable:   getCreateRunsQuery(backend),
		scoresTable: getCreateScoresQuery(backend),
	}
	if err := createTables(db, tables, runTables); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run tables: %w", err)
	}

	m, err := newMigrate(db, backend)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		return nil, fmt.Errorf("failed to apply run store migrations: %w", err)
	}

	return &RunStoreImpl{db: db, m: m, backend: backend}, nil
}

// getCreateRunsQuery returns the CREATE TABLE query for mygameon_priority_runs.
// label_counts is added by migration 1.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_requests INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_requests INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_requests INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)
	}
}

// getCreateScoresQuery returns the CREATE TABLE query for mygameon_priority_scores.
func getCreateScoresQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(scoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				request_id VARCHAR(255) NOT NULL,
				title VARCHAR(512) NOT NULL,
				scored_at DATETIME(6) NOT NULL,
				request_count INT NOT NULL,
				estimated_size_gb DOUBLE NOT NULL,
				score DOUBLE NOT NULL,
				score_label VARCHAR(50) NOT NULL,
				PRIMARY KEY (run_id, request_id)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				request_id TEXT NOT NULL,
				title TEXT NOT NULL,
				scored_at TIMESTAMPTZ NOT NULL,
				request_count INT NOT NULL,
				estimated_size_gb DOUBLE PRECISION NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				score_label TEXT NOT NULL,
				PRIMARY KEY (run_id, request_id)
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				request_id TEXT NOT NULL,
				title TEXT NOT NULL,
				scored_at TEXT NOT NULL,
				request_count INTEGER NOT NULL,
				estimated_size_gb REAL NOT NULL,
				score REAL NOT NULL,
				score_label TEXT NOT NULL,
				PRIMARY KEY (run_id, request_id)
			);
		`, quoted)
	}
}

// disabled reports whether the store is a no-op.
func (rs *RunStoreImpl) disabled() bool {
	return rs.backend == schema.NoneBackend || rs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quoted := quoteTableName(runsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quoted)
		err = rs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quoted)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert priority run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, totalRequests int, labelCounts map[schema.PriorityLabel]int) error {
	if rs.disabled() {
		return nil
	}

	quoted := quoteTableName(runsTable, rs.backend)

	var startTime time.Time
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quoted, placeholder(rs.backend, 1))
	if err := rs.db.QueryRow(query, runID).Scan(&timeScanner{dst: &startTime}); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	countsJSON, err := json.Marshal(labelCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal label counts: %w", err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_requests = %s, label_counts = %s WHERE run_id = %s`,
		quoted,
		placeholder(rs.backend, 1), placeholder(rs.backend, 2), placeholder(rs.backend, 3),
		placeholder(rs.backend, 4), placeholder(rs.backend, 5))

	if _, err := rs.db.Exec(updateQuery, formatTime(endTime, rs.backend), durationMs, totalRequests, string(countsJSON), runID); err != nil {
		return fmt.Errorf("failed to update priority run: %w", err)
	}
	return nil
}

// RecordScore stores the computed priority of one request.
func (rs *RunStoreImpl) RecordScore(runID int64, scoredAt time.Time, request schema.RankedRequest) error {
	if rs.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, request_id, title, scored_at, request_count, estimated_size_gb, score, score_label)
		VALUES (%s)
	`, quoteTableName(scoresTable, rs.backend), placeholders(rs.backend, 8))

	_, err := rs.db.Exec(query,
		runID, request.RequestID, request.Title, formatTime(scoredAt, rs.backend),
		request.RequestCount, request.EstimatedSizeGB, request.Score, string(request.Label))
	if err != nil {
		return fmt.Errorf("failed to insert score for request %q: %w", request.RequestID, err)
	}
	return nil
}

// Close closes the migrate instance, which owns the DB connection.
func (rs *RunStoreImpl) Close() error {
	rs.closeOnce.Do(func() {
		switch {
		case rs.m != nil:
			srcErr, dbErr := rs.m.Close()
			rs.closeErr = errors.Join(srcErr, dbErr)
		case rs.db != nil:
			rs.closeErr = rs.db.Close()
		}
	})
	return rs.closeErr
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.disabled() {
		return status, nil
	}

	quoted := quoteTableName(runsTable, rs.backend)
	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row = rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoted))
		if err := row.Scan(&status.LastRunID, &timeScanner{dst: &status.LastRunTime}); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		row = rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoted))
		if err := row.Scan(&timeScanner{dst: &status.OldestRunTime}); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		row = rs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_requests), 0) FROM %s", quoted))
		if err := row.Scan(&status.TotalScored); err != nil {
			return status, fmt.Errorf("failed to get total scored requests: %w", err)
		}
	}

	for _, table := range runTables {
		var count int64
		row = rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	if rs.m != nil {
		version, dirty, err := rs.m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return status, fmt.Errorf("failed to get schema version: %w", err)
		}
		status.SchemaVersion = version
		status.SchemaDirty = dirty
	}

	return status, nil
}

// GetAllRuns retrieves all priority runs from the store.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.PriorityRunRecord, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, total_requests, config_params, label_counts
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query priority runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PriorityRunRecord
	for rows.Next() {
		var record schema.PriorityRunRecord
		var endTime time.Time
		end := &timeScanner{dst: &endTime}
		if err := rows.Scan(&record.RunID, &timeScanner{dst: &record.StartTime}, end,
			&record.RunDurationMs, &record.TotalRequests, &record.ConfigParams, &record.LabelCounts); err != nil {
			return nil, fmt.Errorf("failed to scan priority run: %w", err)
		}
		if end.valid {
			record.EndTime = &endTime
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating priority runs: %w", err)
	}
	return results, nil
}

// GetAllScores retrieves all recorded scores from the store.
func (rs *RunStoreImpl) GetAllScores() ([]schema.PriorityScoreRecord, error) {
	if rs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, request_id, title, scored_at, request_count, estimated_size_gb, score, score_label
		FROM %s ORDER BY run_id, request_id`, quoteTableName(scoresTable, rs.backend))

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query priority scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PriorityScoreRecord
	for rows.Next() {
		var record schema.PriorityScoreRecord
		if err := rows.Scan(&record.RunID, &record.RequestID, &record.Title, &timeScanner{dst: &record.ScoredAt},
			&record.RequestCount, &record.EstimatedSizeGB, &record.Score, &record.ScoreLabel); err != nil {
			return nil, fmt.Errorf("failed to scan priority score: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating priority scores: %w", err)
	}
	return results, nil
}
