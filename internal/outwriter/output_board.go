package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/parquet"
	"github.com/madlig/mygameon/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// boardEntry is one ranked request with its board position.
type boardEntry struct {
	Rank                 int `json:"rank" yaml:"rank"`
	schema.RankedRequest `yaml:",inline"`
}

// PrintBoard outputs the ranked request board, dispatching based on the output format configured.
func PrintBoard(ranked []schema.RankedRequest, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquetFile(parquet.ConvertRankedRequests(ranked), cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBoard(w, ranked, cfg, duration)
	}, "Wrote board")
}

// WriteBoard writes the ranked request board to w.
func WriteBoard(w io.Writer, ranked []schema.RankedRequest, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, boardEntries(ranked))
	case schema.YAMLOut:
		return writeYAML(w, boardEntries(ranked))
	case schema.CSVOut:
		return writeBoardCSV(w, ranked, cfg)
	case schema.ParquetOut:
		return parquet.Write(w, parquet.ConvertRankedRequests(ranked))
	default:
		return writeBoardTable(w, ranked, cfg, duration)
	}
}

func boardEntries(ranked []schema.RankedRequest) []boardEntry {
	entries := make([]boardEntry, len(ranked))
	for i, r := range ranked {
		entries[i] = boardEntry{Rank: i + 1, RankedRequest: r}
	}
	return entries
}

// writeBoardTable generates and writes the human-readable board.
func writeBoardTable(w io.Writer, ranked []schema.RankedRequest, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Title", "Requests", "Size (GB)", "Score", "Label"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	titleWidth := GetMaxTitleWidth(cfg)
	data := make([][]string, 0, len(ranked))
	for i, r := range ranked {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.Title, titleWidth),
			fmt.Sprintf(intFmt, r.RequestCount),
			fmtFloat(r.EstimatedSizeGB),
			fmtFloat(r.Score),
			labelFor(r.Label, cfg),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	counts := algo.CountLabels(ranked)
	if _, err := fmt.Fprintf(w, "Showing top %d requests (%s: %d, %s: %d, %s: %d)\n", len(ranked),
		schema.HotLabel, counts[schema.HotLabel],
		schema.NormalLabel, counts[schema.NormalLabel],
		schema.BatchLaterLabel, counts[schema.BatchLaterLabel]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored in %v. Runs backend: %s\n", duration, cfg.RunsBackend); err != nil {
		return err
	}
	return nil
}

// writeBoardCSV writes the board in CSV format.
func writeBoardCSV(w io.Writer, ranked []schema.RankedRequest, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	header := []string{
		"rank",
		"requestID",
		"title",
		"request_count",
		"estimated_size_gb",
		"score",
		"score_rounded",
		"label",
		"color_class",
		"status",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range ranked {
			rec := []string{
				strconv.Itoa(i + 1),
				r.RequestID,
				r.Title,
				fmt.Sprintf(intFmt, r.RequestCount),
				fmtFloat(r.EstimatedSizeGB),
				fmtFloat(r.Score),
				strconv.FormatFloat(r.ScoreRounded, 'f', -1, 64),
				string(r.Label),
				r.ColorClass,
				string(r.Status),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintPriority outputs a single priority result.
func PrintPriority(report schema.PriorityReport, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedParquet("a single priority result")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePriority(w, report, cfg)
	}, "Wrote priority")
}

// WritePriority writes a single priority result to w.
func WritePriority(w io.Writer, report schema.PriorityReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, report)
	case schema.YAMLOut:
		return writeYAML(w, report)
	case schema.CSVOut:
		header := []string{"request_count", "estimated_size_gb", "score", "score_rounded", "label", "color_class"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return cw.Write([]string{
				strconv.FormatFloat(report.RequestCount, 'f', -1, 64),
				strconv.FormatFloat(report.EstimatedSize, 'f', -1, 64),
				fmtFloat(report.Score),
				strconv.FormatFloat(report.ScoreRounded, 'f', -1, 64),
				string(report.Label),
				report.ColorClass,
			})
		})
	default:
		return writeKeyValueTable(w, [][]string{
			{"Request Count", strconv.FormatFloat(report.RequestCount, 'f', -1, 64)},
			{"Estimated Size (GB)", strconv.FormatFloat(report.EstimatedSize, 'f', -1, 64)},
			{"Score", fmtFloat(report.Score)},
			{"Label", labelFor(report.Label, cfg)},
			{"Color Class", report.ColorClass},
		})
	}
}

// PrintPriorityConfig outputs the effective scoring parameters.
func PrintPriorityConfig(priority schema.PriorityConfig, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedParquet("the priority config")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePriorityConfig(w, priority, cfg)
	}, "Wrote priority config")
}

// WritePriorityConfig writes the effective scoring parameters next to their defaults.
func WritePriorityConfig(w io.Writer, priority schema.PriorityConfig, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, priority)
	case schema.YAMLOut:
		return writeYAML(w, priority)
	}

	defaults := schema.DefaultPriorityConfig()
	rows := [][]string{
		{"weightRequestCount", formatNumber(priority.WeightRequestCount), formatNumber(defaults.WeightRequestCount)},
		{"weightSize", formatNumber(priority.WeightSize), formatNumber(defaults.WeightSize)},
		{"sizeBatchThresholdGB", formatNumber(priority.SizeBatchThresholdGB), formatNumber(defaults.SizeBatchThresholdGB)},
		{"maxRequestCountNormalizer", formatNumber(priority.MaxRequestCountNormalizer), formatNumber(defaults.MaxRequestCountNormalizer)},
		{"maxSizeNormalizerGB", formatNumber(priority.MaxSizeNormalizerGB), formatNumber(defaults.MaxSizeNormalizerGB)},
	}

	if cfg.Output == schema.CSVOut {
		return writeCSVWithHeader(w, []string{"key", "value", "default"}, func(cw *csv.Writer) error {
			for _, row := range rows {
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Key", "Value", "Default"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Formula: Score = %s*min(count/%s,1) + %s*(1-min(size/%s,1))\n",
		formatNumber(priority.WeightRequestCount), formatNumber(priority.MaxRequestCountNormalizer),
		formatNumber(priority.WeightSize), formatNumber(priority.MaxSizeNormalizerGB))
	return err
}

// PrintSyncSummary outputs the outcome of a search index push.
func PrintSyncSummary(summary schema.SyncSummary, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedParquet("sync summaries")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSyncSummary(w, summary, cfg)
	}, "Wrote summary")
}

// WriteSyncSummary writes the outcome of a search index push to w.
func WriteSyncSummary(w io.Writer, summary schema.SyncSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, summary)
	case schema.YAMLOut:
		return writeYAML(w, summary)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"records", "batches", "skipped", "duration_ms"}, func(cw *csv.Writer) error {
			return cw.Write([]string{
				strconv.Itoa(summary.Records),
				strconv.Itoa(summary.Batches),
				strconv.Itoa(summary.Skipped),
				strconv.FormatInt(summary.Duration.Milliseconds(), 10),
			})
		})
	default:
		_, err := fmt.Fprintf(w, "Pushed %d records in %d batches (%d skipped) in %v\n",
			summary.Records, summary.Batches, summary.Skipped, summary.Duration)
		return err
	}
}

// writeKeyValueTable renders two-column rows.
func writeKeyValueTable(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// formatNumber prints a float without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
