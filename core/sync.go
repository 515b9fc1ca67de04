package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/internal/csvio"
	"github.com/madlig/mygameon/schema"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrNoCatalogStore is returned when a command needs the catalog but the catalog backend is disabled.
var ErrNoCatalogStore = errors.New("catalog store is not configured (set --catalog-backend)")

// ExecuteCatalogImport uploads every CSV row to the catalog with normalized
// tags and mirrors the tags into the search index.
func ExecuteCatalogImport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	catalog := mgr.GetCatalogStore()
	if catalog == nil {
		return ErrNoCatalogStore
	}

	parsed, err := csvio.ReadFile(cfg.InputFile)
	if err != nil {
		return err
	}
	logHeader(cfg, "Importing", len(parsed.Rows))

	results := normalizeRows(ctx, cfg.Workers, parsed.Rows)
	if err := ctx.Err(); err != nil {
		return err
	}

	games := make([]schema.Game, len(parsed.Rows))
	updates := make([]schema.IndexUpdate, len(parsed.Rows))
	for i, row := range parsed.Rows {
		games[i] = row.Game(results[i].Tags)
		updates[i] = schema.IndexUpdate{ObjectID: row.ObjectID, Tags: results[i].Tags}
	}

	written, err := catalog.UpsertGames(ctx, games)
	if err != nil {
		return fmt.Errorf("failed to upsert games: %w", err)
	}

	batches, err := PushIndexUpdates(ctx, cfg, mgr.GetSearchIndex(), updates)
	if err != nil {
		return err
	}

	return w.WriteSyncSummary(schema.SyncSummary{
		Records:  written,
		Batches:  batches,
		Skipped:  parsed.Skipped,
		Duration: time.Since(start),
	}, cfg)
}

// ExecuteCatalogDelete removes every object ID listed in the CSV from the catalog and the search index.
func ExecuteCatalogDelete(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	catalog := mgr.GetCatalogStore()
	if catalog == nil {
		return ErrNoCatalogStore
	}

	parsed, err := csvio.ReadIDsFile(cfg.InputFile)
	if err != nil {
		return err
	}
	ids := make([]string, len(parsed.Rows))
	for i, row := range parsed.Rows {
		ids[i] = row.ObjectID
	}

	deleted, err := catalog.DeleteGames(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to delete games: %w", err)
	}

	batches := 0
	if index := mgr.GetSearchIndex(); index != nil {
		for _, batch := range chunk(ids, batchSize(cfg)) {
			if err := index.DeleteObjects(ctx, batch); err != nil {
				return fmt.Errorf("failed to delete index objects: %w", err)
			}
			batches++
		}
	}

	return w.WriteSyncSummary(schema.SyncSummary{
		Records:  deleted,
		Batches:  batches,
		Skipped:  parsed.Skipped + max(len(ids)-deleted, 0),
		Duration: time.Since(start),
	}, cfg)
}

// ExecuteCatalogBackfill re-normalizes every catalog record and pushes the
// tags to the search index as partial updates.
func ExecuteCatalogBackfill(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	summary, err := Backfill(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	summary.Duration = time.Since(start)
	return w.WriteSyncSummary(summary, cfg)
}

// Backfill pushes normalized tags for every catalog record.
func Backfill(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SyncSummary, error) {
	catalog := mgr.GetCatalogStore()
	if catalog == nil {
		return schema.SyncSummary{}, ErrNoCatalogStore
	}
	index := mgr.GetSearchIndex()
	if index == nil {
		return schema.SyncSummary{}, errors.New("search index is not configured")
	}

	games, err := catalog.ListGames(ctx)
	if err != nil {
		return schema.SyncSummary{}, fmt.Errorf("failed to list games: %w", err)
	}
	logHeader(cfg, "Backfilling", len(games))

	updates := make([]schema.IndexUpdate, 0, len(games))
	skipped := 0
	for _, g := range games {
		if g.ObjectID == "" {
			skipped++
			continue
		}
		updates = append(updates, schema.IndexUpdate{
			ObjectID: g.ObjectID,
			Tags:     algo.NormalizeTags(g.Tags, g.Genre, g.Name),
		})
	}

	batches, err := PushIndexUpdates(ctx, cfg, index, updates)
	if err != nil {
		return schema.SyncSummary{}, err
	}
	return schema.SyncSummary{Records: len(updates), Batches: batches, Skipped: skipped}, nil
}

// PushIndexUpdates sends updates in batches of at most --batch-size objects.
// At most --workers batches are in flight and --push-rate caps how many
// batches start per second. A nil index is a no-op.
func PushIndexUpdates(ctx context.Context, cfg *contract.Config, index contract.SearchIndex, updates []schema.IndexUpdate) (int, error) {
	if index == nil || len(updates) == 0 {
		return 0, nil
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.PushRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PushRate), 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	batches := 0
	for _, batch := range chunk(updates, batchSize(cfg)) {
		if err := limiter.Wait(gctx); err != nil {
			break
		}
		batches++
		g.Go(func() error {
			if err := index.PartialUpdateObjects(gctx, batch); err != nil {
				return fmt.Errorf("failed to push %d index updates: %w", len(batch), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batches, err
	}
	return batches, ctx.Err()
}

// batchSize returns the configured batch size capped at the index limit.
func batchSize(cfg *contract.Config) int {
	if cfg.BatchSize <= 0 || cfg.BatchSize > schema.DefaultBatchSize {
		return schema.DefaultBatchSize
	}
	return cfg.BatchSize
}

// chunk splits items into consecutive slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(items); start += size {
		out = append(out, items[start:min(start+size, len(items))])
	}
	return out
}
