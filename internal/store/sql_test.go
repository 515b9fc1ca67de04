package store

import (
	"testing"
	"time"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"plain", "mygameon_games", false},
		{"leading underscore", "_games", false},
		{"empty", "", true},
		{"leading digit", "1games", true},
		{"injection", "games; DROP TABLE x", true},
		{"dash", "my-games", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`games`", quoteTableName("games", schema.MySQLBackend))
	assert.Equal(t, `"games"`, quoteTableName("games", schema.PostgreSQLBackend))
	assert.Equal(t, `"games"`, quoteTableName("games", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 4))
}

func TestUpsertQueries(t *testing.T) {
	assert.Contains(t, getGamesUpsertQuery(schema.MySQLBackend), "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, getGamesUpsertQuery(schema.PostgreSQLBackend), "ON CONFLICT (object_id)")
	assert.Contains(t, getGamesUpsertQuery(schema.SQLiteBackend), "INSERT OR REPLACE")
	assert.Contains(t, getIndexUpsertQuery(schema.PostgreSQLBackend), "EXCLUDED.tags")
}

func TestCreateQueries(t *testing.T) {
	assert.Contains(t, getCreateRunsQuery(schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, getCreateRunsQuery(schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, getCreateRunsQuery(schema.SQLiteBackend), "AUTOINCREMENT")
	assert.NotContains(t, getCreateRunsQuery(schema.SQLiteBackend), "label_counts")
	assert.Contains(t, getCreateScoresQuery(schema.SQLiteBackend), "PRIMARY KEY (run_id, request_id)")
	assert.Contains(t, getCreateRequestsQuery(schema.MySQLBackend), "DATETIME(6)")
	assert.Contains(t, getCreateIndexQuery(schema.PostgreSQLBackend), "TIMESTAMPTZ")
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 6, time.FixedZone("X", 3600))
	assert.Equal(t, "2025-01-02T02:04:05.000000006Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts, formatTime(ts, schema.MySQLBackend))
}

func TestTimeScanner(t *testing.T) {
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		src   any
		valid bool
	}{
		{"native", want, true},
		{"sqlite text", "2025-01-02T03:04:05.000000000Z", true},
		{"mysql bytes", []byte("2025-01-02 03:04:05.000000"), true},
		{"mysql plain", "2025-01-02 03:04:05", true},
		{"null", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			s := &timeScanner{dst: &got}
			require.NoError(t, s.Scan(tt.src))
			assert.Equal(t, tt.valid, s.valid)
			if tt.valid {
				assert.True(t, want.Equal(got), "got %s", got)
			}
		})
	}

	var got time.Time
	assert.Error(t, (&timeScanner{dst: &got}).Scan("yesterday"))
	assert.Error(t, (&timeScanner{dst: &got}).Scan(42))
}
