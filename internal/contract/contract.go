// Package contract provides interfaces and shared utilities for the MyGameON CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/madlig/mygameon/schema"
)

// StoreManager defines the interface for reaching the persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetCatalogStore() CatalogStore
	GetRequestStore() RequestStore
	GetSearchIndex() SearchIndex
	GetRunStore() RunStore
}

// CatalogStore holds the authoritative game records.
type CatalogStore interface {
	// UpsertGames inserts or replaces the given games and returns how many were written.
	UpsertGames(ctx context.Context, games []schema.Game) (int, error)

	// DeleteGames removes games by object ID and returns how many existed.
	DeleteGames(ctx context.Context, objectIDs []string) (int, error)

	// ListGames returns every game ordered by object ID.
	ListGames(ctx context.Context) ([]schema.Game, error)

	// GetStatus returns status information about the catalog.
	GetStatus() (schema.StoreStatus, error)

	Close() error
}

// RequestStore holds the community download requests.
type RequestStore interface {
	// UpsertRequest stores a request keyed by its ID. A zero RequestCount
	// increments the stored count instead of replacing it.
	UpsertRequest(ctx context.Context, req schema.GameRequest) (schema.GameRequest, error)

	// ListRequests returns requests with the given status, or all of them
	// when status is empty.
	ListRequests(ctx context.Context, status schema.RequestStatus) ([]schema.GameRequest, error)

	Close() error
}

// SearchIndex is the hosted search mirror of the catalog.
type SearchIndex interface {
	// PartialUpdateObjects writes the tags attribute of each object,
	// creating objects that do not exist yet.
	PartialUpdateObjects(ctx context.Context, updates []schema.IndexUpdate) error

	// DeleteObjects removes objects by ID.
	DeleteObjects(ctx context.Context, objectIDs []string) error

	Close() error
}

// RunStore defines the interface for tracking request board runs and their scores.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRequests int, labelCounts map[schema.PriorityLabel]int) error

	// RecordScore stores the computed priority of one request
	RecordScore(runID int64, scoredAt time.Time, request schema.RankedRequest) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every tracked run
	GetAllRuns() ([]schema.PriorityRunRecord, error)

	// GetAllScores returns every recorded score
	GetAllScores() ([]schema.PriorityScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// ResultWriter renders command results in the configured output format.
type ResultWriter interface {
	WriteTags(results []schema.TagResult, cfg *Config, duration time.Duration) error
	WriteCards(cards []schema.CardResult, cfg *Config) error
	WriteVocabulary(entries []schema.VocabularyEntry, cfg *Config) error
	WritePriority(report schema.PriorityReport, cfg *Config) error
	WritePriorityConfig(priority schema.PriorityConfig, cfg *Config) error
	WriteBoard(ranked []schema.RankedRequest, cfg *Config, duration time.Duration) error
	WriteSyncSummary(summary schema.SyncSummary, cfg *Config) error
}
