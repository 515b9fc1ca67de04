package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultAddr        = ":8080"
	DefaultPushRate    = 0.0
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
const DateTimeFormat = "2006-01-02 15:04:05"

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile   string
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	CatalogBackend   schema.DatabaseBackend
	CatalogDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	BatchSize int
	PushRate  float64 // Batches per second; 0 means unthrottled
	ChipLimit int
	Addr      string

	// Single-record inputs
	Tags          []string
	Genre         []string
	Name          string
	RequestCount  float64
	EstimatedSize float64
	Title         string
	Status        schema.RequestStatus

	// Priority is the effective scoring config (defaults + overrides)
	Priority schema.PriorityConfig

	UseEmojis bool // Enable emojis in progress lines
	UseColors bool // Enable colored labels in table output
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFile string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	CatalogBackend   string `mapstructure:"catalog-backend"`
	CatalogDBConnect string `mapstructure:"catalog-db-connect"`
	RunsBackend      string `mapstructure:"runs-backend"`
	RunsDBConnect    string `mapstructure:"runs-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from catalog and tags commands ---
	BatchSize int     `mapstructure:"batch-size"`
	PushRate  float64 `mapstructure:"push-rate"`
	ChipLimit int     `mapstructure:"chip-limit"`

	// --- Fields from single-record commands ---
	Tags   string  `mapstructure:"tags"`
	Genre  string  `mapstructure:"genre"`
	Name   string  `mapstructure:"name"`
	Count  float64 `mapstructure:"count"`
	Size   float64 `mapstructure:"size"`
	Title  string  `mapstructure:"title"`
	Status string  `mapstructure:"status"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Priority overrides from config file ---
	Priority schema.PriorityOverrides `mapstructure:"priority"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Tags != nil {
		clone.Tags = append([]string(nil), c.Tags...)
	}
	if c.Genre != nil {
		clone.Genre = append([]string(nil), c.Genre...)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := validateSyncInputs(cfg, input); err != nil {
		return err
	}
	if err := processRecordInputs(cfg, input); err != nil {
		return err
	}
	return processPriorityConfig(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend lower-cases a backend name, mapping the empty string to none.
func ParseBackend(s string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(s)))
	if backend == "" {
		return schema.NoneBackend, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", s)
	}
	return backend, nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	profilePrefix = strings.TrimSpace(profilePrefix)
	if profilePrefix == "" {
		return nil
	}
	if strings.ContainsAny(profilePrefix, "*?[") {
		return fmt.Errorf("invalid profile prefix %q", profilePrefix)
	}
	profile.Enabled = true
	profile.Prefix = profilePrefix
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = input.InputFile
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	return nil
}

// validateBackendConfigs validates catalog and run tracking backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Catalog Backend Validation ---
	catalog, err := ParseBackend(input.CatalogBackend)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	cfg.CatalogBackend = catalog
	cfg.CatalogDBConnect = input.CatalogDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CatalogBackend, cfg.CatalogDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	runs, err := ParseBackend(input.RunsBackend)
	if err != nil {
		return fmt.Errorf("runs: %w", err)
	}
	cfg.RunsBackend = runs
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return err
	}

	// Catalog and run tracking must not share one SQLite file
	if cfg.CatalogBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
		catalogPath := cfg.CatalogDBConnect
		if catalogPath == "" {
			catalogPath = GetCatalogDBFilePath()
		}
		runsPath := cfg.RunsDBConnect
		if runsPath == "" {
			runsPath = GetRunsDBFilePath()
		}
		if catalogPath == runsPath && catalogPath != ":memory:" {
			return fmt.Errorf("catalog and run tracking must use different SQLite database files. Both resolve to %q", catalogPath)
		}
	}

	return nil
}

// validateSyncInputs validates the search index push settings.
func validateSyncInputs(cfg *Config, input *ConfigRawInput) error {
	if input.BatchSize < 1 || input.BatchSize > schema.DefaultBatchSize {
		return fmt.Errorf("batch-size must be between 1 and %d (received %d)", schema.DefaultBatchSize, input.BatchSize)
	}
	cfg.BatchSize = input.BatchSize

	if input.PushRate < 0 {
		return fmt.Errorf("push-rate cannot be negative (received %g)", input.PushRate)
	}
	cfg.PushRate = input.PushRate

	if input.ChipLimit < 0 {
		return fmt.Errorf("chip-limit cannot be negative (received %d)", input.ChipLimit)
	}
	cfg.ChipLimit = input.ChipLimit

	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return nil
}

// processRecordInputs converts the single-record flags.
func processRecordInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Tags = SplitList(input.Tags)
	cfg.Genre = SplitList(input.Genre)
	cfg.Name = strings.TrimSpace(input.Name)
	cfg.Title = strings.TrimSpace(input.Title)

	cfg.RequestCount = input.Count
	cfg.EstimatedSize = input.Size

	cfg.Status = schema.RequestStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if cfg.Status != "" {
		if _, ok := schema.ValidRequestStatuses[cfg.Status]; !ok {
			return fmt.Errorf("invalid status '%s'. must be open, fulfilled", input.Status)
		}
	}
	return nil
}

// processPriorityConfig merges the configured overrides over the defaults.
// Weights are not required to sum to 1; normalizers must be positive.
func processPriorityConfig(cfg *Config, input *ConfigRawInput) error {
	merged := algo.MergePriorityConfig(input.Priority)
	if merged.MaxRequestCountNormalizer <= 0 {
		return fmt.Errorf("priority.max_request_count_normalizer must be greater than 0 (received %g)", merged.MaxRequestCountNormalizer)
	}
	if merged.MaxSizeNormalizerGB <= 0 {
		return fmt.Errorf("priority.max_size_normalizer_gb must be greater than 0 (received %g)", merged.MaxSizeNormalizerGB)
	}
	cfg.Priority = merged
	return nil
}
