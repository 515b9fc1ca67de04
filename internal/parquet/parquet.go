// Package parquet provides data structures and functions for exporting mygameon
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/madlig/mygameon/schema"
	"github.com/parquet-go/parquet-go"
)

// PriorityRun represents a single request board run with metadata.
// This struct maps to the mygameon_priority_runs database table.
type PriorityRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRequests is the number of requests scored in this run
	TotalRequests int32 `parquet:"total_requests,snappy"`

	// ConfigParams contains the JSON-encoded priority config (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`

	// LabelCounts contains the JSON-encoded count per label (nullable)
	LabelCounts *string `parquet:"label_counts,optional,snappy"`
}

// PriorityScore represents the computed priority of one request in a run.
// This struct maps to the mygameon_priority_scores database table.
type PriorityScore struct {
	RunID           int64     `parquet:"run_id,snappy"`
	RequestID       string    `parquet:"request_id,snappy"`
	Title           string    `parquet:"title,snappy"`
	ScoredAt        time.Time `parquet:"scored_at,snappy"`
	RequestCount    int32     `parquet:"request_count,snappy"`
	EstimatedSizeGB float64   `parquet:"estimated_size_gb,snappy"`
	Score           float64   `parquet:"score,snappy"`
	ScoreLabel      string    `parquet:"score_label,snappy"`
}

// TagRow is one normalized catalog record.
type TagRow struct {
	ObjectID string   `parquet:"object_id,snappy"`
	Name     string   `parquet:"name,snappy"`
	Genre    []string `parquet:"genre,list"`
	RawTags  []string `parquet:"raw_tags,list"`
	Tags     []string `parquet:"tags,list"`
}

// BoardRow is one ranked request of the request board.
type BoardRow struct {
	Rank            int32   `parquet:"rank"`
	RequestID       string  `parquet:"request_id,snappy"`
	Title           string  `parquet:"title,snappy"`
	RequestCount    int32   `parquet:"request_count"`
	EstimatedSizeGB float64 `parquet:"estimated_size_gb"`
	Score           float64 `parquet:"score"`
	ScoreRounded    float64 `parquet:"score_rounded"`
	Label           string  `parquet:"label,snappy"`
	ColorClass      string  `parquet:"color_class,snappy"`
	Status          string  `parquet:"status,snappy"`
}

// Write writes rows to w using a schema inferred from the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadFile reads every row of a Parquet file written by WriteFile.
func ReadFile[T any](inputPath string) ([]T, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}

// ConvertRunRecords converts schema.PriorityRunRecord to PriorityRun for Parquet export.
func ConvertRunRecords(records []schema.PriorityRunRecord) []PriorityRun {
	result := make([]PriorityRun, len(records))
	for i, record := range records {
		result[i] = PriorityRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRequests: record.TotalRequests,
			ConfigParams:  record.ConfigParams,
			LabelCounts:   record.LabelCounts,
		}
	}
	return result
}

// ConvertScoreRecords converts schema.PriorityScoreRecord to PriorityScore for Parquet export.
func ConvertScoreRecords(records []schema.PriorityScoreRecord) []PriorityScore {
	result := make([]PriorityScore, len(records))
	for i, record := range records {
		result[i] = PriorityScore(record)
	}
	return result
}

// ConvertTagResults converts normalized records to TagRow.
func ConvertTagResults(results []schema.TagResult) []TagRow {
	rows := make([]TagRow, len(results))
	for i, r := range results {
		rows[i] = TagRow{
			ObjectID: r.ObjectID,
			Name:     r.Name,
			Genre:    r.Genre,
			RawTags:  r.RawTags,
			Tags:     r.Tags,
		}
	}
	return rows
}

// ConvertRankedRequests converts a ranked board to BoardRow, numbering from 1.
func ConvertRankedRequests(ranked []schema.RankedRequest) []BoardRow {
	rows := make([]BoardRow, len(ranked))
	for i, r := range ranked {
		rows[i] = BoardRow{
			Rank:            int32(i + 1),
			RequestID:       r.RequestID,
			Title:           r.Title,
			RequestCount:    int32(r.RequestCount),
			EstimatedSizeGB: r.EstimatedSizeGB,
			Score:           r.Score,
			ScoreRounded:    r.ScoreRounded,
			Label:           string(r.Label),
			ColorClass:      r.ColorClass,
			Status:          string(r.Status),
		}
	}
	return rows
}

// ExportFileName derives a per-table file name from a user-supplied base path.
func ExportFileName(base, table string) string {
	return strings.TrimSuffix(base, ".parquet") + "." + table + ".parquet"
}
