// Package cmd defines the command-line interface for mygameon.
package cmd

import (
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(priorityCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the tags subcommands to the parent tags command
	tagsCmd.AddCommand(tagsNormalizeCmd)
	tagsCmd.AddCommand(tagsFileCmd)
	tagsCmd.AddCommand(tagsChipsCmd)
	tagsCmd.AddCommand(tagsVocabularyCmd)

	// Add the priority subcommands to the parent priority command
	priorityCmd.AddCommand(priorityScoreCmd)
	priorityCmd.AddCommand(priorityBoardCmd)
	priorityCmd.AddCommand(priorityConfigCmd)

	// Add the request subcommands to the parent request command
	requestCmd.AddCommand(requestAddCmd)

	// Add the catalog subcommands to the parent catalog command
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
	catalogCmd.AddCommand(catalogBackfillCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	catalogCmd.AddCommand(catalogClearCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("catalog-backend", string(schema.SQLiteBackend), "Catalog backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("catalog-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run tracking (must differ from catalog-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in progress lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Single-record flags; bound to Viper by sharedSetup for the running command
	for _, c := range []*cobra.Command{tagsNormalizeCmd, tagsChipsCmd} {
		c.Flags().String("tags", "", "Raw tags separated by ',' or ';' or '|'")
		c.Flags().String("genre", "", "Genres separated by ',' or ';' or '|'")
		c.Flags().String("name", "", "Game title used for edition inference")
	}
	tagsChipsCmd.Flags().Int("chip-limit", schema.DefaultChipLimit, "Canonical tags shown per card before the overflow counter")

	priorityScoreCmd.Flags().Float64("count", 0, "Number of users who requested the game")
	priorityScoreCmd.Flags().Float64("size", 0, "Estimated download size in GB")
	priorityBoardCmd.Flags().String("status", string(schema.OpenStatus), "Request status to rank: open or fulfilled")

	requestAddCmd.Flags().String("title", "", "Title of the requested game")
	requestAddCmd.Flags().Float64("count", 0, "Request count to store (0 adds one request)")
	requestAddCmd.Flags().Float64("size", 0, "Estimated download size in GB")
	requestAddCmd.Flags().String("status", "", "Request status: open or fulfilled")

	for _, c := range []*cobra.Command{catalogImportCmd, catalogDeleteCmd, catalogBackfillCmd} {
		c.Flags().Int("batch-size", schema.DefaultBatchSize, "Records per search index request")
		c.Flags().Float64("push-rate", contract.DefaultPushRate, "Maximum index batches per second (0 = unthrottled)")
	}

	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address for the HTTP API to listen on")

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
