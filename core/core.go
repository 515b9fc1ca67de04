// Package core has core logic for tag normalization, request prioritization and catalog sync.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/csvio"
	"github.com/madlig/mygameon/schema"
)

// ExecutorFunc defines the function signature for executing the different command modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w contract.ResultWriter) error

// ErrNoRequestStore is returned when a command needs the request store but the catalog backend is disabled.
var ErrNoRequestStore = errors.New("request store is not configured (set --catalog-backend)")

// ExecuteTagsNormalize normalizes the single record given by the --tags, --genre and --name flags.
func ExecuteTagsNormalize(_ context.Context, cfg *contract.Config, _ contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	result := normalizeRecord(recordFromConfig(cfg))
	return w.WriteTags([]schema.TagResult{result}, cfg, time.Since(start))
}

// ExecuteTagsFile normalizes every row of the CSV file given as input.
func ExecuteTagsFile(ctx context.Context, cfg *contract.Config, _ contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	rows, err := readRows(cfg)
	if err != nil {
		return err
	}
	logHeader(cfg, "Normalizing", len(rows))
	results := normalizeRows(ctx, cfg.Workers, rows)
	return w.WriteTags(results, cfg, time.Since(start))
}

// ExecuteTagsChips renders the display chips for the single record, or for
// every row of the input file when one is given.
func ExecuteTagsChips(ctx context.Context, cfg *contract.Config, _ contract.StoreManager, w contract.ResultWriter) error {
	var results []schema.TagResult
	if cfg.InputFile != "" {
		rows, err := readRows(cfg)
		if err != nil {
			return err
		}
		results = normalizeRows(ctx, cfg.Workers, rows)
	} else {
		results = []schema.TagResult{normalizeRecord(recordFromConfig(cfg))}
	}

	cards := make([]schema.CardResult, len(results))
	for i, r := range results {
		cards[i] = schema.CardResult{
			TagResult: r,
			TagChips:  algo.BuildTagChips(r.RawTags, r.Genre, r.Name, cfg.ChipLimit),
		}
	}
	return w.WriteCards(cards, cfg)
}

// ExecuteTagsVocabulary lists the canonical vocabulary with the patterns that produce each tag.
func ExecuteTagsVocabulary(_ context.Context, cfg *contract.Config, _ contract.StoreManager, w contract.ResultWriter) error {
	return w.WriteVocabulary(Vocabulary(), cfg)
}

// Vocabulary returns the canonical tags in sort order with their seed patterns.
func Vocabulary() []schema.VocabularyEntry {
	patterns := make(map[string][]string, len(schema.CanonicalVocabulary))
	for _, rule := range algo.TagRules() {
		patterns[rule.Label] = append(patterns[rule.Label], rule.Pattern)
	}
	entries := make([]schema.VocabularyEntry, len(schema.CanonicalVocabulary))
	for i, tag := range schema.CanonicalVocabulary {
		entries[i] = schema.VocabularyEntry{Rank: i + 1, Tag: tag, Patterns: patterns[tag]}
	}
	return entries
}

// ExecutePriorityScore scores the single request given by the --count and --size flags.
func ExecutePriorityScore(_ context.Context, cfg *contract.Config, _ contract.StoreManager, w contract.ResultWriter) error {
	metrics := schema.RequestMetrics{RequestCount: cfg.RequestCount, EstimatedSize: cfg.EstimatedSize}
	report := schema.PriorityReport{
		RequestMetrics: metrics,
		PriorityResult: algo.ComputePriority(metrics, cfg.Priority),
	}
	return w.WritePriority(report, cfg)
}

// ExecutePriorityConfig prints the effective scoring parameters.
func ExecutePriorityConfig(_ context.Context, cfg *contract.Config, _ contract.StoreManager, w contract.ResultWriter) error {
	return w.WritePriorityConfig(cfg.Priority, cfg)
}

// readRows loads the CSV input file.
func readRows(cfg *contract.Config) ([]csvio.Row, error) {
	if cfg.InputFile == "" {
		return nil, errors.New("an input CSV file is required")
	}
	parsed, err := csvio.ReadFile(cfg.InputFile)
	if err != nil {
		return nil, err
	}
	return parsed.Rows, nil
}

// recordFromConfig builds a row from the single-record flags.
func recordFromConfig(cfg *contract.Config) csvio.Row {
	row := csvio.Row{Name: cfg.Name, Genre: cfg.Genre, Tags: cfg.Tags}
	if cfg.Name != "" {
		row.ObjectID = csvio.ObjectID(cfg.Name)
	}
	return row
}
