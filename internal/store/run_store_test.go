package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(id, title string, count int, size, score float64, label schema.PriorityLabel) schema.RankedRequest {
	return schema.RankedRequest{
		GameRequest:    schema.GameRequest{RequestID: id, Title: title, RequestCount: count, EstimatedSizeGB: size},
		PriorityResult: schema.PriorityResult{Score: score, Label: label},
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	rs, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := rs.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, rs.EndRun(1, time.Now(), 10, nil))
	assert.NoError(t, rs.RecordScore(1, time.Now(), schema.RankedRequest{}))

	runs, err := rs.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)
	assert.NoError(t, rs.Close())
}

func TestRunStore_SQLite(t *testing.T) {
	rs, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	runID, err := rs.BeginRun(start, map[string]any{"limit": 25})
	require.NoError(t, err)
	assert.Positive(t, runID)

	require.NoError(t, rs.RecordScore(runID, start, ranked("r1", "Hades", 20, 0, 1, schema.HotLabel)))
	require.NoError(t, rs.RecordScore(runID, start, ranked("r2", "Starfield", 1, 125, 0.03, schema.BatchLaterLabel)))

	counts := map[schema.PriorityLabel]int{schema.HotLabel: 1, schema.BatchLaterLabel: 1}
	require.NoError(t, rs.EndRun(runID, start.Add(1500*time.Millisecond), 2, counts))

	runs, err := rs.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.TotalRequests)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"limit":25}`, *run.ConfigParams)
	require.NotNil(t, run.LabelCounts)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal([]byte(*run.LabelCounts), &decoded))
	assert.Equal(t, map[string]int{"Hot": 1, "Batch Later": 1}, decoded)

	scores, err := rs.GetAllScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "r1", scores[0].RequestID)
	assert.Equal(t, "Hot", scores[0].ScoreLabel)
	assert.Equal(t, 125.0, scores[1].EstimatedSizeGB)

	status, err := rs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 2, status.TotalScored)
	assert.Equal(t, int64(2), status.TableSizes[scoresTable])
	assert.Equal(t, uint(1), status.SchemaVersion)
	assert.False(t, status.SchemaDirty)
}

func TestRunStore_OpenRunHasNoEndTime(t *testing.T) {
	rs, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	_, err = rs.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	runs, err := rs.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Nil(t, runs[0].LabelCounts)
}

func TestRunStore_EndUnknownRun(t *testing.T) {
	rs, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	assert.Error(t, rs.EndRun(42, time.Now(), 0, nil))
}

func TestRunStore_DuplicateScoreFails(t *testing.T) {
	rs, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	runID, err := rs.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	req := ranked("r1", "Hades", 3, 10, 0.5, schema.NormalLabel)
	require.NoError(t, rs.RecordScore(runID, time.Now(), req))
	assert.Error(t, rs.RecordScore(runID, time.Now(), req))
}

func TestRunStore_ReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	rs, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = rs.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, rs.Close())

	reopened, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	status, err := reopened.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, uint(1), status.SchemaVersion)
}
