package contract

import (
	"testing"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:            10,
		Workers:          4,
		Precision:        2,
		Output:           "text",
		Emoji:            "no",
		Color:            "yes",
		CatalogBackend:   string(schema.SQLiteBackend),
		CatalogDBConnect: ":memory:",
		BatchSize:        schema.DefaultBatchSize,
		ChipLimit:        schema.DefaultChipLimit,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid limit (zero)", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid limit (too large)", mutate: func(in *ConfigRawInput) { in.Limit = 1001 }, expectError: true},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid precision (zero)", mutate: func(in *ConfigRawInput) { in.Precision = 0 }, expectError: true},
		{name: "invalid precision (too high)", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output format", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "yaml output", mutate: func(in *ConfigRawInput) { in.Output = "YAML" }},
		{name: "parquet without output file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{
			name: "parquet with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "board.parquet"
			},
		},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid catalog backend", mutate: func(in *ConfigRawInput) { in.CatalogBackend = "mongo" }, expectError: true},
		{
			name:        "mysql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.CatalogBackend = string(schema.MySQLBackend) },
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.CatalogBackend = string(schema.MySQLBackend)
				in.CatalogDBConnect = "user:pass@tcp(localhost:3306)/mygameon"
			},
		},
		{
			name:        "postgresql runs backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.RunsBackend = string(schema.PostgreSQLBackend) },
			expectError: true,
		},
		{
			name: "same sqlite file for catalog and runs",
			mutate: func(in *ConfigRawInput) {
				in.CatalogDBConnect = "/tmp/shared.db"
				in.RunsBackend = string(schema.SQLiteBackend)
				in.RunsDBConnect = "/tmp/shared.db"
			},
			expectError: true,
		},
		{name: "batch size too large", mutate: func(in *ConfigRawInput) { in.BatchSize = 1001 }, expectError: true},
		{name: "batch size zero", mutate: func(in *ConfigRawInput) { in.BatchSize = 0 }, expectError: true},
		{name: "negative push rate", mutate: func(in *ConfigRawInput) { in.PushRate = -1 }, expectError: true},
		{name: "negative chip limit", mutate: func(in *ConfigRawInput) { in.ChipLimit = -1 }, expectError: true},
		{name: "negative count passes through", mutate: func(in *ConfigRawInput) { in.Count = -5 }, expectError: false},
		{name: "negative size passes through", mutate: func(in *ConfigRawInput) { in.Size = -1 }, expectError: false},
		{name: "invalid status", mutate: func(in *ConfigRawInput) { in.Status = "pending" }, expectError: true},
		{name: "valid status", mutate: func(in *ConfigRawInput) { in.Status = "Open" }},
		{
			name:        "zero size normalizer",
			mutate:      func(in *ConfigRawInput) { in.Priority.MaxSizeNormalizerGB = ptr(0) },
			expectError: true,
		},
		{
			name:   "weights above one are allowed",
			mutate: func(in *ConfigRawInput) { in.Priority.WeightRequestCount = ptr(3) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				assert.Equal(t, input.Limit, cfg.ResultLimit)
			}
		})
	}
}

func TestProcessAndValidatePopulatesConfig(t *testing.T) {
	input := validInput()
	input.Tags = "Controller Support; coop mode"
	input.Genre = "RPG|Adventure"
	input.Name = "  Hades  "
	input.Count = 12
	input.Size = 20
	input.Priority = schema.PriorityOverrides{WeightSize: ptr(0.2)}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, []string{"Controller Support", "coop mode"}, cfg.Tags)
	assert.Equal(t, []string{"RPG", "Adventure"}, cfg.Genre)
	assert.Equal(t, "Hades", cfg.Name)
	assert.Equal(t, 12.0, cfg.RequestCount)
	assert.Equal(t, 20.0, cfg.EstimatedSize)
	assert.Equal(t, schema.NoneBackend, cfg.RunsBackend)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)

	assert.Equal(t, 0.6, cfg.Priority.WeightRequestCount)
	assert.Equal(t, 0.2, cfg.Priority.WeightSize)
	assert.Equal(t, 10.0, cfg.Priority.SizeBatchThresholdGB)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Tags: []string{"a"}, Genre: []string{"b"}, ResultLimit: 5}
	clone := cfg.Clone()
	clone.Tags[0] = "changed"
	clone.ResultLimit = 9

	assert.Equal(t, "a", cfg.Tags[0])
	assert.Equal(t, 5, cfg.ResultLimit)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/mygameon", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/mygameon", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=mygameon", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=mygameon", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseBackend(t *testing.T) {
	backend, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, backend)

	backend, err = ParseBackend(" PostgreSQL ")
	require.NoError(t, err)
	assert.Equal(t, schema.PostgreSQLBackend, backend)

	_, err = ParseBackend("redis")
	assert.Error(t, err)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, " mygameon "))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "mygameon", profile.Prefix)

	assert.Error(t, ProcessProfilingConfig(&ProfileConfig{}, "run*"))
}
