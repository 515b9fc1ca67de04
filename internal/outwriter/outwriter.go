// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTags prints normalized tag results using the configured output format.
func (ow *OutWriter) WriteTags(results []schema.TagResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTagResults(results, cfg, duration)
}

// WriteCards prints chip renderings using the configured output format.
func (ow *OutWriter) WriteCards(cards []schema.CardResult, cfg *contract.Config) error {
	return PrintCards(cards, cfg)
}

// WriteVocabulary prints the canonical vocabulary using the configured output format.
func (ow *OutWriter) WriteVocabulary(entries []schema.VocabularyEntry, cfg *contract.Config) error {
	return PrintVocabulary(entries, cfg)
}

// WritePriority prints a single priority result using the configured output format.
func (ow *OutWriter) WritePriority(report schema.PriorityReport, cfg *contract.Config) error {
	return PrintPriority(report, cfg)
}

// WritePriorityConfig prints the effective scoring parameters.
func (ow *OutWriter) WritePriorityConfig(priority schema.PriorityConfig, cfg *contract.Config) error {
	return PrintPriorityConfig(priority, cfg)
}

// WriteBoard prints the ranked request board using the configured output format.
func (ow *OutWriter) WriteBoard(ranked []schema.RankedRequest, cfg *contract.Config, duration time.Duration) error {
	return PrintBoard(ranked, cfg, duration)
}

// WriteSyncSummary prints the outcome of a search index push.
func (ow *OutWriter) WriteSyncSummary(summary schema.SyncSummary, cfg *contract.Config) error {
	return PrintSyncSummary(summary, cfg)
}
