package schema

import "time"

// StoreStatus represents the status of the catalog store.
type StoreStatus struct {
	Backend        string `json:"backend"`
	Connected      bool   `json:"connected"`
	TotalGames     int    `json:"total_games"`
	TotalRequests  int    `json:"total_requests"`
	IndexedObjects int    `json:"indexed_objects"`
	// StaleIndexObjects counts games whose indexed tags differ from the
	// catalog plus index objects with no catalog game.
	StaleIndexObjects int              `json:"stale_index_objects"`
	LastUpdateTime    time.Time        `json:"last_update_time"`
	OldestEntryTime   time.Time        `json:"oldest_entry_time"`
	TableSizeBytes    int64            `json:"table_size_bytes"`
	TableSizes        map[string]int64 `json:"table_sizes"`
}

// RunStatus represents the status of the priority run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalScored   int              `json:"total_scored"`
	TableSizes    map[string]int64 `json:"table_sizes"`
	SchemaVersion uint             `json:"schema_version"`
	SchemaDirty   bool             `json:"schema_dirty"`
}

// PriorityRunRecord represents a row from the mygameon_priority_runs table.
type PriorityRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRequests int32
	ConfigParams  *string
	LabelCounts   *string
}

// PriorityScoreRecord represents a row from the mygameon_priority_scores table.
type PriorityScoreRecord struct {
	RunID           int64
	RequestID       string
	Title           string
	ScoredAt        time.Time
	RequestCount    int32
	EstimatedSizeGB float64
	Score           float64
	ScoreLabel      string
}
