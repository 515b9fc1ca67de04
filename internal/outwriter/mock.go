package outwriter

import (
	"time"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of ResultWriter for testing.
type MockResultWriter struct {
	mock.Mock
}

var _ contract.ResultWriter = &MockResultWriter{} // Compile-time check

// WriteTags implements the ResultWriter interface.
func (m *MockResultWriter) WriteTags(results []schema.TagResult, cfg *contract.Config, duration time.Duration) error {
	return m.Called(results, cfg, duration).Error(0)
}

// WriteCards implements the ResultWriter interface.
func (m *MockResultWriter) WriteCards(cards []schema.CardResult, cfg *contract.Config) error {
	return m.Called(cards, cfg).Error(0)
}

// WriteVocabulary implements the ResultWriter interface.
func (m *MockResultWriter) WriteVocabulary(entries []schema.VocabularyEntry, cfg *contract.Config) error {
	return m.Called(entries, cfg).Error(0)
}

// WritePriority implements the ResultWriter interface.
func (m *MockResultWriter) WritePriority(report schema.PriorityReport, cfg *contract.Config) error {
	return m.Called(report, cfg).Error(0)
}

// WritePriorityConfig implements the ResultWriter interface.
func (m *MockResultWriter) WritePriorityConfig(priority schema.PriorityConfig, cfg *contract.Config) error {
	return m.Called(priority, cfg).Error(0)
}

// WriteBoard implements the ResultWriter interface.
func (m *MockResultWriter) WriteBoard(ranked []schema.RankedRequest, cfg *contract.Config, duration time.Duration) error {
	return m.Called(ranked, cfg, duration).Error(0)
}

// WriteSyncSummary implements the ResultWriter interface.
func (m *MockResultWriter) WriteSyncSummary(summary schema.SyncSummary, cfg *contract.Config) error {
	return m.Called(summary, cfg).Error(0)
}
