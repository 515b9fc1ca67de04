package cmd

import (
	"fmt"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/store"
	"github.com/madlig/mygameon/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsBackendConfig reads and validates the run tracking backend settings.
func runsBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend, err := contract.ParseBackend(viper.GetString("runs-backend"))
	if err != nil {
		return "", "", fmt.Errorf("runs: %w", err)
	}
	connStr := viper.GetString("runs-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// runsSetup loads minimal configuration needed for run tracking operations.
func runsSetup() error {
	backend, connStr, err := runsBackendConfig()
	if err != nil {
		return err
	}

	// No catalog for run tracking commands
	if err := store.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads the backend settings without opening the store,
// so migrations can run against a fresh database.
func runsMigrateSetup() error {
	backend, connStr, err := runsBackendConfig()
	if err != nil {
		return err
	}
	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run tracking management.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage request board history and exports",
	Long: `Manage the history of request boards.

When --runs-backend is set, every "priority board" run is tracked, storing:
- Run metadata (timestamp, scoring configuration, label counts)
- The score, label and rank of every request on the board

This enables trend reports on demand and data export for BI tools.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  mygameon runs status --runs-backend sqlite

  # Export for analysis in pandas/DuckDB
  mygameon runs export --runs-backend sqlite --output-file board-history.parquet`,
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all request board history",
	Long: `Delete all stored board runs and score history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  mygameon runs export --output-file backup.parquet
  mygameon runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store.CloseStores()
		if err := store.ClearRuns(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about request board history.

Displays:
- Backend type and connection status
- Schema version
- Total number of runs and scored requests
- Last and oldest run timestamps
- Table sizes

Examples:
  mygameon runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		store.PrintRunStatus(status)
	},
}

// runsExportCmd exports run history to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export board history to Parquet for BI tools and analytics",
	Long: `Export all stored board history to Parquet format.

Exports two datasets next to --output-file:
- priority_runs - metadata about each board run
- priority_scores - score, label and rank per request and run

Requires: --output-file parameter

Examples:
  mygameon runs export --output-file history.parquet
  duckdb -c "SELECT * FROM read_parquet('history.priority_scores.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteRunExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.
A rollback to version 0 is reapplied the next time the store is opened.

Examples:
  # Migrate to latest version (default)
  mygameon runs migrate --runs-backend sqlite

  # Migrate to specific version
  mygameon runs migrate --runs-backend sqlite --target-version 1

  # Rollback to initial state
  mygameon runs migrate --runs-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
