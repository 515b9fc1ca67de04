// Package schema has models and constants for all parts of mygameon.
package schema

import "time"

// Game is a catalog record as kept by the document store.
type Game struct {
	ObjectID  string    `json:"objectID" yaml:"objectID"`
	Name      string    `json:"name" yaml:"name"`
	Genre     []string  `json:"genre" yaml:"genre"`
	Tags      []string  `json:"tags" yaml:"tags"`
	SizeGB    float64   `json:"sizeGB" yaml:"sizeGB"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// GameRequest is a user request for a title that is not yet in the catalog.
type GameRequest struct {
	RequestID       string        `json:"requestID" yaml:"requestID"`
	Title           string        `json:"title" yaml:"title"`
	RequestCount    int           `json:"requestCount" yaml:"requestCount"`
	EstimatedSizeGB float64       `json:"estimatedSizeGB" yaml:"estimatedSizeGB"`
	Status          RequestStatus `json:"status" yaml:"status"`
	CreatedAt       time.Time     `json:"createdAt" yaml:"createdAt"`
}

// Metrics returns the scoring inputs of the request.
func (r GameRequest) Metrics() RequestMetrics {
	return RequestMetrics{
		RequestCount:  float64(r.RequestCount),
		EstimatedSize: r.EstimatedSizeGB,
	}
}

// RankedRequest is a request together with its computed priority.
type RankedRequest struct {
	GameRequest    `yaml:",inline"`
	PriorityResult `yaml:",inline"`
}

// IndexUpdate is a partial update of one search index object. Only the tags
// attribute is written.
type IndexUpdate struct {
	ObjectID string   `json:"objectID"`
	Tags     []string `json:"tags"`
}

// SyncSummary describes the outcome of a push to the search index.
type SyncSummary struct {
	Records  int           `json:"records" yaml:"records"`
	Batches  int           `json:"batches" yaml:"batches"`
	Skipped  int           `json:"skipped" yaml:"skipped"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}
