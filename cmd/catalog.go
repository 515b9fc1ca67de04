package cmd

import (
	"fmt"

	"github.com/madlig/mygameon/core"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/store"
	"github.com/madlig/mygameon/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// catalogSetup loads minimal configuration needed for catalog maintenance.
// This is used by commands that need catalog access without full shared setup.
func catalogSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("catalog-backend"))
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	connStr := viper.GetString("catalog-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// No run tracking for catalog maintenance
	if err := store.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	cfg.CatalogBackend = backend
	cfg.CatalogDBConnect = connStr

	return nil
}

// catalogSetupWrapper wraps catalogSetup to provide PreRunE for catalog commands.
func catalogSetupWrapper(_ *cobra.Command, _ []string) error {
	return catalogSetup()
}

// catalogCmd focused on catalog and search index management.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Sync the game catalog and its search index",
	Long: `Manage the game catalog and the search index records that mirror it.

Imports normalize the tags of every row before storing it, then push partial
updates (objectID plus tags) to the search index in batches of --batch-size.
Use --push-rate to throttle batches and --workers to bound concurrent pushes.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  import   - Normalize a CSV export and sync it
  delete   - Remove the games of a CSV export
  backfill - Re-normalize every stored game and resync the index
  status   - Show catalog statistics and connection info
  clear    - Remove all catalog data

Examples:
  # Import a catalog export at 5 batches per second
  mygameon catalog import games.csv --push-rate 5

  # Check catalog status
  mygameon catalog status`,
}

// catalogImportCmd imports a CSV export.
var catalogImportCmd = &cobra.Command{
	Use:   "import <input.csv>",
	Short: "Normalize and store the games of a CSV export",
	Long: `Normalize every row of a CSV export, upsert it into the catalog and push the
normalized tags to the search index. Games without an objectID get one derived
from their name, so re-importing the same file updates in place.

Examples:
  mygameon catalog import games.csv
  mygameon catalog import games.csv --batch-size 500 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot import catalog", core.ExecuteCatalogImport),
}

// catalogDeleteCmd deletes the games of a CSV export.
var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <input.csv>",
	Short: "Remove the games of a CSV export from the catalog and index",
	Long: `Delete every game listed in a CSV export from the catalog and the search
index. Games are matched by objectID, or by the ID derived from their name.

Examples:
  mygameon catalog delete delisted.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot delete catalog entries", core.ExecuteCatalogDelete),
}

// catalogBackfillCmd re-normalizes the stored catalog.
var catalogBackfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Re-normalize every stored game and resync the search index",
	Long: `Re-run tag normalization over every stored game. Use this after the
vocabulary or the inference rules change.

Examples:
  mygameon catalog backfill --push-rate 2`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot backfill catalog", core.ExecuteCatalogBackfill),
}

// catalogClearCmd clears the catalog.
var catalogClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all catalog, request and index data",
	Long: `Delete all stored games, download requests and search index records.

WARNING: This action cannot be undone.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the catalog tables

Examples:
  # Clear SQLite catalog (default)
  mygameon catalog clear

  # Clear MySQL catalog (set connection string via env variable)
  MYGAMEON_CATALOG_BACKEND=mysql MYGAMEON_CATALOG_DB_CONNECT="..." mygameon catalog clear`,
	PreRunE: catalogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The open handle would keep the SQLite file busy
		store.CloseStores()
		if err := store.ClearCatalog(cfg.CatalogBackend, cfg.CatalogDBConnect); err != nil {
			contract.LogFatal("Failed to clear catalog", err)
		}
		fmt.Println("Catalog cleared successfully.")
	},
}

// catalogStatusCmd shows catalog status.
var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display catalog statistics and connection details",
	Long: `Show detailed information about the game catalog.

Displays:
- Backend type and connection status
- Number of games, requests and indexed objects
- Last and oldest update timestamps
- Table sizes

Examples:
  mygameon catalog status`,
	PreRunE: catalogSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		catalog := store.Manager.GetCatalogStore()
		if catalog == nil {
			store.PrintStoreStatus(schema.StoreStatus{Backend: string(cfg.CatalogBackend)})
			return
		}
		status, err := catalog.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get catalog status", err)
		}
		store.PrintStoreStatus(status)
	},
}
