package store

import (
	"context"
	"time"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetCatalogStore implements the StoreManager interface.
func (m *MockStoreManager) GetCatalogStore() contract.CatalogStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CatalogStore)
	return store
}

// GetRequestStore implements the StoreManager interface.
func (m *MockStoreManager) GetRequestStore() contract.RequestStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RequestStore)
	return store
}

// GetSearchIndex implements the StoreManager interface.
func (m *MockStoreManager) GetSearchIndex() contract.SearchIndex {
	ret := m.Called()
	index, _ := ret.Get(0).(contract.SearchIndex)
	return index
}

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockCatalogStore is a mock implementation of CatalogStore for testing.
type MockCatalogStore struct {
	mock.Mock
}

var _ contract.CatalogStore = &MockCatalogStore{} // Compile-time check

// UpsertGames implements the CatalogStore interface.
func (m *MockCatalogStore) UpsertGames(ctx context.Context, games []schema.Game) (int, error) {
	args := m.Called(ctx, games)
	return args.Int(0), args.Error(1)
}

// DeleteGames implements the CatalogStore interface.
func (m *MockCatalogStore) DeleteGames(ctx context.Context, objectIDs []string) (int, error) {
	args := m.Called(ctx, objectIDs)
	return args.Int(0), args.Error(1)
}

// ListGames implements the CatalogStore interface.
func (m *MockCatalogStore) ListGames(ctx context.Context) ([]schema.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]schema.Game)
	return games, args.Error(1)
}

// GetStatus implements the CatalogStore interface.
func (m *MockCatalogStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the CatalogStore interface.
func (m *MockCatalogStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRequestStore is a mock implementation of RequestStore for testing.
type MockRequestStore struct {
	mock.Mock
}

var _ contract.RequestStore = &MockRequestStore{} // Compile-time check

// UpsertRequest implements the RequestStore interface.
func (m *MockRequestStore) UpsertRequest(ctx context.Context, req schema.GameRequest) (schema.GameRequest, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(schema.GameRequest), args.Error(1)
}

// ListRequests implements the RequestStore interface.
func (m *MockRequestStore) ListRequests(ctx context.Context, status schema.RequestStatus) ([]schema.GameRequest, error) {
	args := m.Called(ctx, status)
	requests, _ := args.Get(0).([]schema.GameRequest)
	return requests, args.Error(1)
}

// Close implements the RequestStore interface.
func (m *MockRequestStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSearchIndex is a mock implementation of SearchIndex for testing.
type MockSearchIndex struct {
	mock.Mock
}

var _ contract.SearchIndex = &MockSearchIndex{} // Compile-time check

// PartialUpdateObjects implements the SearchIndex interface.
func (m *MockSearchIndex) PartialUpdateObjects(ctx context.Context, updates []schema.IndexUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

// DeleteObjects implements the SearchIndex interface.
func (m *MockSearchIndex) DeleteObjects(ctx context.Context, objectIDs []string) error {
	args := m.Called(ctx, objectIDs)
	return args.Error(0)
}

// Close implements the SearchIndex interface.
func (m *MockSearchIndex) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalRequests int, labelCounts map[schema.PriorityLabel]int) error {
	args := m.Called(runID, endTime, totalRequests, labelCounts)
	return args.Error(0)
}

// RecordScore implements the RunStore interface.
func (m *MockRunStore) RecordScore(runID int64, scoredAt time.Time, request schema.RankedRequest) error {
	args := m.Called(runID, scoredAt, request)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.PriorityRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.PriorityRunRecord)
	return runs, args.Error(1)
}

// GetAllScores implements the RunStore interface.
func (m *MockRunStore) GetAllScores() ([]schema.PriorityScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.PriorityScoreRecord)
	return scores, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
