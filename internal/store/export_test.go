package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/madlig/mygameon/internal/parquet"
	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRuns(t *testing.T) {
	rs, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = rs.Close() }()

	start := time.Now()
	runID, err := rs.BeginRun(start, map[string]any{"limit": 5})
	require.NoError(t, err)
	require.NoError(t, rs.RecordScore(runID, start, ranked("r1", "Hades", 10, 25, 0.5, schema.NormalLabel)))
	require.NoError(t, rs.EndRun(runID, start.Add(time.Second), 1, map[schema.PriorityLabel]int{schema.NormalLabel: 1}))

	base := filepath.Join(t.TempDir(), "export.parquet")
	require.NoError(t, ExportRuns(rs, base))

	runs, err := parquet.ReadFile[parquet.PriorityRun](parquet.ExportFileName(base, "priority_runs"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)

	scores, err := parquet.ReadFile[parquet.PriorityScore](parquet.ExportFileName(base, "priority_scores"))
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "Hades", scores[0].Title)
}

func TestExportRunsErrors(t *testing.T) {
	assert.Error(t, ExportRuns(&MockRunStore{}, ""))
	assert.Error(t, ExportRuns(nil, "out.parquet"))

	empty := &MockRunStore{}
	empty.On("GetStatus").Return(schema.RunStatus{}, nil)
	assert.ErrorContains(t, ExportRuns(empty, "out.parquet"), "no run data")

	failing := &MockRunStore{}
	failing.On("GetStatus").Return(schema.RunStatus{TotalRuns: 1}, nil)
	failing.On("GetAllRuns").Return(nil, errors.New("boom"))
	assert.ErrorContains(t, ExportRuns(failing, "out.parquet"), "boom")
	failing.AssertExpectations(t)

}
