package parquet

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/madlig/mygameon/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(PriorityRun))
	require.NotNil(t, s)

	for _, colName := range []string{
		"run_id", "start_time", "end_time", "run_duration_ms",
		"total_requests", "config_params", "label_counts",
	} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestPriorityScoreStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(PriorityScore))
	for _, colName := range []string{
		"run_id", "request_id", "title", "scored_at",
		"request_count", "estimated_size_gb", "score", "score_label",
	} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	duration := int32(2000)
	params := `{"weight_size":0.4}`
	records := []schema.PriorityRunRecord{
		{RunID: 1, StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalRequests: 3, ConfigParams: &params},
		{RunID: 2, StartTime: end, TotalRequests: 0}, // still running
	}

	require.NoError(t, WriteFile(ConvertRunRecords(records), outputPath))

	got, err := ReadFile[PriorityRun](outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].RunID)
	assert.True(t, start.Equal(got[0].StartTime))
	require.NotNil(t, got[0].RunDurationMs)
	assert.Equal(t, duration, *got[0].RunDurationMs)
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteBoardRows(t *testing.T) {
	ranked := []schema.RankedRequest{
		{
			GameRequest:    schema.GameRequest{RequestID: "r1", Title: "Celeste", RequestCount: 20, EstimatedSizeGB: 1, Status: schema.OpenStatus},
			PriorityResult: schema.PriorityResult{Score: 0.992, ScoreRounded: 0.99, Label: schema.HotLabel, ColorClass: "red-accent"},
		},
		{
			GameRequest:    schema.GameRequest{RequestID: "r2", Title: "Starfield", RequestCount: 2, EstimatedSizeGB: 125, Status: schema.OpenStatus},
			PriorityResult: schema.PriorityResult{Score: 0.06, ScoreRounded: 0.06, Label: schema.BatchLaterLabel, ColorClass: "neutral"},
		},
	}

	rows := ConvertRankedRequests(ranked)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Equal(t, "Batch Later", rows[1].Label)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows))
	assert.Positive(t, buf.Len())
}

func TestWriteTagRowsRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tags.parquet")
	results := []schema.TagResult{
		{ObjectID: "g1", Name: "Hades", RawTags: []string{"coop"}, Genre: []string{"Roguelike"}, Tags: []string{"Co-op"}},
		{ObjectID: "g2", Name: "Celeste", Tags: []string{"Pixel Art", "Indie"}},
	}

	require.NoError(t, WriteFile(ConvertTagResults(results), outputPath))

	got, err := ReadFile[TagRow](outputPath)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Co-op"}, got[0].Tags)
	assert.Equal(t, []string{"Pixel Art", "Indie"}, got[1].Tags)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "out.priority_runs.parquet", ExportFileName("out.parquet", "priority_runs"))
	assert.Equal(t, "out.priority_scores.parquet", ExportFileName("out", "priority_scores"))
}

func TestWriteFileInvalidPath(t *testing.T) {
	err := WriteFile([]PriorityRun{}, filepath.Join(t.TempDir(), "missing", "x.parquet"))
	assert.Error(t, err)
}
