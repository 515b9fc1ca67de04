package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorLabel(t *testing.T) {
	for _, label := range schema.AllPriorityLabels {
		t.Run(string(label), func(t *testing.T) {
			assert.Contains(t, GetColorLabel(label), string(label))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ; | ", nil},
		{"Co-op", []string{"Co-op"}},
		{"RPG, Adventure", []string{"RPG", "Adventure"}},
		{"a;b|c,d", []string{"a", "b", "c", "d"}},
		{"  spaced  out ;", []string{"spaced  out"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	catalog := GetCatalogDBFilePath()
	assert.Contains(t, catalog, ".mygameon_catalog.db")
	assert.True(t, strings.HasPrefix(catalog, homeDir), "path %s should start with home dir %s", catalog, homeDir)

	runs := GetRunsDBFilePath()
	assert.Contains(t, runs, ".mygameon_runs.db")
	assert.NotEqual(t, catalog, runs)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "Short", TruncateText("Short", 10))
	assert.Equal(t, "The Wit...", TruncateText("The Witcher 3", 10))
	assert.Equal(t, "ゼルダの...", TruncateText("ゼルダの伝説 ブレス", 7))
	assert.Equal(t, "abcdef", TruncateText("abcdef", 3), "too small to truncate")
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}
