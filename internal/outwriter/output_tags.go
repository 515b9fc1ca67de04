package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/parquet"
	"github.com/madlig/mygameon/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// tagSeparator joins tag lists inside a single table or CSV cell.
const tagSeparator = "|"

// PrintTagResults outputs normalized tag results, dispatching based on the output format configured.
func PrintTagResults(results []schema.TagResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquetFile(parquet.ConvertTagResults(results), cfg.OutputFile)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteTagResults(w, results, cfg, duration)
	}, "Wrote tags")
}

// WriteTagResults writes tag results to w in a text-based output format.
func WriteTagResults(w io.Writer, results []schema.TagResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, nonNil(results))
	case schema.YAMLOut:
		return writeYAML(w, nonNil(results))
	case schema.CSVOut:
		return writeTagCSV(w, results)
	case schema.ParquetOut:
		return parquet.Write(w, parquet.ConvertTagResults(results))
	default:
		return writeTagTable(w, results, cfg, duration)
	}
}

// writeTagTable generates and writes the human-readable table.
func writeTagTable(w io.Writer, results []schema.TagResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Object ID", "Name", "Tags"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignLeft, tw.AlignLeft}
	})

	titleWidth := GetMaxTitleWidth(cfg)
	data := make([][]string, 0, len(results))
	canonical := 0
	for i, r := range results {
		for _, t := range r.Tags {
			if schema.IsCanonical(t) {
				canonical++
			}
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.ObjectID,
			contract.TruncateText(r.Name, titleWidth),
			strings.Join(r.Tags, ", "),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Normalized %d records (%d canonical tags)\n", len(results), canonical); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeTagCSV writes tag results in CSV format. List cells are joined with '|'.
func writeTagCSV(w io.Writer, results []schema.TagResult) error {
	header := []string{"objectID", "name", "genre", "raw_tags", "tags"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				r.ObjectID,
				r.Name,
				strings.Join(r.Genre, tagSeparator),
				strings.Join(r.RawTags, tagSeparator),
				strings.Join(r.Tags, tagSeparator),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintCards outputs chip renderings, dispatching based on the output format configured.
func PrintCards(cards []schema.CardResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedParquet("chips")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCards(w, cards, cfg)
	}, "Wrote chips")
}

// WriteCards writes chip renderings to w.
func WriteCards(w io.Writer, cards []schema.CardResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, nonNil(cards))
	case schema.YAMLOut:
		return writeYAML(w, nonNil(cards))
	case schema.CSVOut:
		header := []string{"objectID", "name", "tags", "chips", "overflow"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, c := range cards {
				rec := []string{
					c.ObjectID,
					c.Name,
					strings.Join(c.Tags, tagSeparator),
					strings.Join(c.Chips, tagSeparator),
					strconv.Itoa(c.Overflow),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Name", "Chips", "More"})
		titleWidth := GetMaxTitleWidth(cfg)
		data := make([][]string, 0, len(cards))
		for _, c := range cards {
			data = append(data, []string{
				contract.TruncateText(c.Name, titleWidth),
				formatChips(c.Chips),
				formatOverflow(c.Overflow),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}
}

// formatChips renders chips as bracketed badges.
func formatChips(chips []string) string {
	if len(chips) == 0 {
		return "-"
	}
	parts := make([]string, len(chips))
	for i, c := range chips {
		parts[i] = "[" + c + "]"
	}
	return strings.Join(parts, " ")
}

// formatOverflow renders the "+N" counter, or nothing when every tag is shown.
func formatOverflow(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", n)
}

// PrintVocabulary outputs the canonical vocabulary, dispatching based on the output format configured.
func PrintVocabulary(entries []schema.VocabularyEntry, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return errUnsupportedParquet("the vocabulary")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteVocabulary(w, entries, cfg)
	}, "Wrote vocabulary")
}

// WriteVocabulary writes the canonical vocabulary to w.
func WriteVocabulary(w io.Writer, entries []schema.VocabularyEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, nonNil(entries))
	case schema.YAMLOut:
		return writeYAML(w, nonNil(entries))
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"rank", "tag", "patterns"}, func(cw *csv.Writer) error {
			for _, e := range entries {
				if err := cw.Write([]string{strconv.Itoa(e.Rank), e.Tag, strings.Join(e.Patterns, " ; ")}); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Canonical Tag", "Seed Patterns"})
		data := make([][]string, 0, len(entries))
		for _, e := range entries {
			patterns := strings.Join(e.Patterns, " ; ")
			if patterns == "" {
				patterns = "-"
			}
			data = append(data, []string{strconv.Itoa(e.Rank), e.Tag, patterns})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "Patterns match case-insensitively; the first matching rule wins.")
		return err
	}
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
