package store

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryCatalog(t *testing.T) *CatalogStoreImpl {
	t.Helper()
	cs, err := NewCatalogStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestCatalogStore_NoneBackend(t *testing.T) {
	cs, err := NewCatalogStore(schema.NoneBackend, "")
	require.NoError(t, err)
	ctx := context.Background()

	n, err := cs.UpsertGames(ctx, []schema.Game{{ObjectID: "a", Name: "A"}})
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	games, err := cs.ListGames(ctx)
	assert.NoError(t, err)
	assert.Empty(t, games)

	req, err := cs.UpsertRequest(ctx, schema.GameRequest{RequestID: "r1", Title: "R"})
	assert.NoError(t, err)
	assert.Equal(t, 1, req.RequestCount)
	assert.Equal(t, schema.OpenStatus, req.Status)

	assert.NoError(t, cs.PartialUpdateObjects(ctx, []schema.IndexUpdate{{ObjectID: "a"}}))
	assert.NoError(t, cs.DeleteObjects(ctx, []string{"a"}))

	status, err := cs.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, cs.Close())
}

func TestCatalogStore_Games(t *testing.T) {
	cs := newMemoryCatalog(t)
	ctx := context.Background()
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	games := []schema.Game{
		{ObjectID: "g2", Name: "Stardew Valley", Genre: []string{"Simulation"}, Tags: []string{"Co-op", "Pixel Art"}, SizeGB: 0.5, UpdatedAt: updated},
		{ObjectID: "g1", Name: "Elden Ring", Genre: nil, Tags: []string{"Open World"}, SizeGB: 60, UpdatedAt: updated},
	}
	n, err := cs.UpsertGames(ctx, games)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	listed, err := cs.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "g1", listed[0].ObjectID)
	assert.Equal(t, []string{}, listed[0].Genre)
	assert.Equal(t, []string{"Co-op", "Pixel Art"}, listed[1].Tags)
	assert.True(t, updated.Equal(listed[1].UpdatedAt))

	// Replace keeps a single row per object ID
	games[0].Tags = []string{"Co-op"}
	_, err = cs.UpsertGames(ctx, games[:1])
	require.NoError(t, err)
	listed, err = cs.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, []string{"Co-op"}, listed[1].Tags)

	deleted, err := cs.DeleteGames(ctx, []string{"g1", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	status, err := cs.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalGames)
	assert.Equal(t, int64(1), status.TableSizes[gamesTable])
	assert.True(t, updated.Equal(status.LastUpdateTime))
	assert.Positive(t, status.TableSizeBytes)
	assert.Equal(t, 1, status.StaleIndexObjects, "g2 was never pushed to the index")
}

func TestCatalogStore_UpsertRequest(t *testing.T) {
	cs := newMemoryCatalog(t)
	ctx := context.Background()
	cs.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	first, err := cs.UpsertRequest(ctx, schema.GameRequest{RequestID: "r1", Title: "Hades", EstimatedSizeGB: 15})
	require.NoError(t, err)
	assert.Equal(t, 1, first.RequestCount)
	assert.Equal(t, schema.OpenStatus, first.Status)
	assert.Equal(t, cs.now(), first.CreatedAt)

	// Zero count adds a vote
	second, err := cs.UpsertRequest(ctx, schema.GameRequest{RequestID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.RequestCount)
	assert.Equal(t, "Hades", second.Title)
	assert.Equal(t, 15.0, second.EstimatedSizeGB)

	// Positive count replaces
	third, err := cs.UpsertRequest(ctx, schema.GameRequest{RequestID: "r1", RequestCount: 9, EstimatedSizeGB: 20, Status: schema.FulfilledStatus})
	require.NoError(t, err)
	assert.Equal(t, 9, third.RequestCount)
	assert.Equal(t, 20.0, third.EstimatedSizeGB)
	assert.Equal(t, schema.FulfilledStatus, third.Status)

	_, err = cs.UpsertRequest(ctx, schema.GameRequest{RequestID: "r2", Title: "Celeste", RequestCount: 4})
	require.NoError(t, err)

	open, err := cs.ListRequests(ctx, schema.OpenStatus)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Celeste", open[0].Title)
	assert.Equal(t, 4, open[0].RequestCount)
	assert.True(t, cs.now().Equal(open[0].CreatedAt))

	all, err := cs.ListRequests(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalogStore_UpsertRequestErrors(t *testing.T) {
	cs := newMemoryCatalog(t)
	ctx := context.Background()

	_, err := cs.UpsertRequest(ctx, schema.GameRequest{Title: "No ID"})
	assert.Error(t, err)

	_, err = cs.UpsertRequest(ctx, schema.GameRequest{RequestID: "r1", RequestCount: -2})
	assert.Error(t, err)
}

func TestCatalogStore_SearchIndex(t *testing.T) {
	cs := newMemoryCatalog(t)
	ctx := context.Background()

	err := cs.PartialUpdateObjects(ctx, []schema.IndexUpdate{
		{ObjectID: "a", Tags: []string{"Co-op"}},
		{ObjectID: "b", Tags: nil},
	})
	require.NoError(t, err)

	err = cs.PartialUpdateObjects(ctx, []schema.IndexUpdate{{ObjectID: "a", Tags: []string{"AAA", "Co-op"}}})
	require.NoError(t, err)

	indexed, err := cs.indexedTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"a": {"AAA", "Co-op"}, "b": {}}, indexed)

	require.NoError(t, cs.DeleteObjects(ctx, []string{"b"}))
	indexed, err = cs.indexedTags(ctx)
	require.NoError(t, err)
	assert.Len(t, indexed, 1)

	assert.Error(t, cs.PartialUpdateObjects(ctx, []schema.IndexUpdate{{Tags: []string{"x"}}}))
}

func TestCatalogStore_FileBackedPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	cs, err := NewCatalogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = cs.UpsertGames(ctx, []schema.Game{{ObjectID: "a", Name: "A"}})
	require.NoError(t, err)
	require.NoError(t, cs.Close())
	require.NoError(t, cs.Close(), "close is idempotent")

	reopened, err := NewCatalogStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	games, err := reopened.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "A", games[0].Name)
}

func TestNewCatalogStoreErrors(t *testing.T) {
	_, err := NewCatalogStore("mongo", "")
	assert.Error(t, err)
}

func TestListCodec(t *testing.T) {
	raw, err := encodeList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	values, err := decodeList(`["a","b"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)

	values, err = decodeList("")
	require.NoError(t, err)
	assert.Equal(t, []string{}, values)

	_, err = decodeList("not json")
	assert.Error(t, err)
}

func TestCatalogStore_StatusIndexDrift(t *testing.T) {
	cs := newMemoryCatalog(t)
	ctx := context.Background()

	_, err := cs.UpsertGames(ctx, []schema.Game{
		{ObjectID: "g1", Name: "Hades", Tags: []string{"Roguelike"}},
		{ObjectID: "g2", Name: "Celeste", Tags: []string{"Indie", "Pixel Art"}},
		{ObjectID: "g3", Name: "Doom", Tags: nil},
	})
	require.NoError(t, err)

	err = cs.PartialUpdateObjects(ctx, []schema.IndexUpdate{
		{ObjectID: "g1", Tags: []string{"Roguelike"}},
		{ObjectID: "g2", Tags: []string{"Indie"}},
		{ObjectID: "g3", Tags: nil},
		{ObjectID: "orphan", Tags: []string{"Co-op"}},
	})
	require.NoError(t, err)

	status, err := cs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 4, status.IndexedObjects)
	assert.Equal(t, 2, status.StaleIndexObjects)
	assert.Positive(t, status.TableSizeBytes)

	var out bytes.Buffer
	writeStoreStatus(&out, status)
	assert.Contains(t, out.String(), "Stale Index Objects: 2\n")
	assert.Contains(t, out.String(), fmt.Sprintf("Table Size: %d bytes\n", status.TableSizeBytes))
}
