package store

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// PrintStoreStatus prints catalog store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	writeStoreStatus(os.Stdout, status)
}

func writeStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Catalog Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Games: %d\n", status.TotalGames)
	_, _ = fmt.Fprintf(w, "Total Requests: %d\n", status.TotalRequests)
	_, _ = fmt.Fprintf(w, "Indexed Objects: %d\n", status.IndexedObjects)
	_, _ = fmt.Fprintf(w, "Stale Index Objects: %d\n", status.StaleIndexObjects)
	if status.TotalGames > 0 {
		_, _ = fmt.Fprintf(w, "Last Update: %s\n", status.LastUpdateTime.Local().Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Local().Format(contract.DateTimeFormat))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
	writeTableSizes(w, status.TableSizes)
}

// PrintRunStatus prints run tracking status information.
func PrintRunStatus(status schema.RunStatus) {
	writeRunStatus(os.Stdout, status)
}

func writeRunStatus(w io.Writer, status schema.RunStatus) {
	_, _ = fmt.Fprintf(w, "Runs Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d", status.SchemaVersion)
	if status.SchemaDirty {
		_, _ = fmt.Fprint(w, " (dirty)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Local().Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Local().Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Total Requests Scored: %d\n", status.TotalScored)
	}
	writeTableSizes(w, status.TableSizes)
}

func writeTableSizes(w io.Writer, sizes map[string]int64) {
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(sizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, sizes[table])
	}
}
