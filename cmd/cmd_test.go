package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	tests := []struct {
		path  []string
		flags []string
	}{
		{path: []string{"tags", "normalize"}, flags: []string{"tags", "genre", "name"}},
		{path: []string{"tags", "file"}},
		{path: []string{"tags", "chips"}, flags: []string{"tags", "genre", "name", "chip-limit"}},
		{path: []string{"tags", "vocabulary"}},
		{path: []string{"priority", "score"}, flags: []string{"count", "size"}},
		{path: []string{"priority", "board"}, flags: []string{"status"}},
		{path: []string{"priority", "config"}},
		{path: []string{"request", "add"}, flags: []string{"title", "count", "size", "status"}},
		{path: []string{"catalog", "import"}, flags: []string{"batch-size", "push-rate"}},
		{path: []string{"catalog", "delete"}, flags: []string{"batch-size", "push-rate"}},
		{path: []string{"catalog", "backfill"}, flags: []string{"batch-size", "push-rate"}},
		{path: []string{"catalog", "status"}},
		{path: []string{"catalog", "clear"}},
		{path: []string{"runs", "migrate"}, flags: []string{"target-version"}},
		{path: []string{"serve"}, flags: []string{"addr"}},
		{path: []string{"mcp"}},
		{path: []string{"version"}},
	}

	for _, tt := range tests {
		c, rest, err := rootCmd.Find(tt.path)
		require.NoError(t, err, "command %v should exist", tt.path)
		assert.Empty(t, rest)
		for _, name := range tt.flags {
			assert.NotNil(t, c.Flags().Lookup(name), "%v should have --%s", tt.path, name)
		}
		assert.NotNil(t, c.InheritedFlags().Lookup("output"), "%v should inherit --output", tt.path)
	}
}

func TestPositionalArgs(t *testing.T) {
	file, _, err := rootCmd.Find([]string{"tags", "file"})
	require.NoError(t, err)
	assert.Error(t, file.Args(file, nil))
	assert.NoError(t, file.Args(file, []string{"games.csv"}))

	chips, _, err := rootCmd.Find([]string{"tags", "chips"})
	require.NoError(t, err)
	assert.NoError(t, chips.Args(chips, nil))
	assert.Error(t, chips.Args(chips, []string{"a.csv", "b.csv"}))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "mygameon CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}
