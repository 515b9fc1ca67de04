package store

import (
	"errors"
	"fmt"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/parquet"
)

// ExportRuns writes the tracked runs and scores of rs to two Parquet files
// derived from outputFile.
func ExportRuns(rs contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if rs == nil {
		return errors.New("run tracking is not enabled")
	}

	status, err := rs.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total priority runs: %d\n", status.TotalRuns)
	fmt.Printf("Total score records: %d\n", status.TableSizes[scoresTable])

	runs, err := rs.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve priority runs: %w", err)
	}
	scores, err := rs.GetAllScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve priority scores: %w", err)
	}

	runsFile := parquet.ExportFileName(outputFile, "priority_runs")
	runRows := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteFile(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write priority runs: %w", err)
	}
	fmt.Printf("Exported %d priority runs to: %s\n", len(runRows), runsFile)

	scoresFile := parquet.ExportFileName(outputFile, "priority_scores")
	scoreRows := parquet.ConvertScoreRecords(scores)
	if err := parquet.WriteFile(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write priority scores: %w", err)
	}
	fmt.Printf("Exported %d score records to: %s\n", len(scoreRows), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Spark.")
	return nil
}

// ExecuteRunExport exports the globally managed run store.
func ExecuteRunExport(outputFile string) error {
	return ExportRuns(Manager.GetRunStore(), outputFile)
}
