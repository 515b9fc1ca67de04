//go:build basic

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBasicCommands runs the store-free commands end to end with SQLite defaults.
func TestBasicCommands(t *testing.T) {
	out, err := runCommand(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, string(out), "mygameon CLI")

	out, err = runCommand(t, nil, "tags", "normalize", "--tags", "coop, Controller Support, speedrun", "--output", "json")
	require.NoError(t, err)
	var results []struct {
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(out, &results))
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Tags, "speedrun")

	_, err = runCommand(t, nil, "tags", "vocabulary")
	require.NoError(t, err)

	_, err = runCommand(t, nil, "priority", "config", "--output", "yaml")
	require.NoError(t, err)

	_, err = runCommand(t, nil, "priority", "score", "--count", "-1")
	assert.Error(t, err, "negative counts are rejected")
}

// TestBasicRequestBoard records requests in a sandboxed SQLite catalog.
func TestBasicRequestBoard(t *testing.T) {
	env := []string{"MYGAMEON_RUNS_BACKEND=sqlite"}
	home := t.TempDir()
	env = append(env,
		"MYGAMEON_CATALOG_DB_CONNECT="+home+"/catalog.db",
		"MYGAMEON_RUNS_DB_CONNECT="+home+"/runs.db",
	)

	_, err := runCommand(t, env, "request", "add", "--title", "Celeste", "--count", "80", "--size", "1.2")
	require.NoError(t, err)
	_, err = runCommand(t, env, "request", "add", "--title", "Starfield", "--count", "5", "--size", "125")
	require.NoError(t, err)

	out, err := runCommand(t, env, "priority", "board", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Celeste")

	out, err = runCommand(t, env, "runs", "status")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Total Runs: 1")
}
