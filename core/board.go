package core

import (
	"context"
	"fmt"
	"time"

	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// ExecutePriorityBoard scores every request with the configured status (open
// by default), ranks them and prints the top --limit. The run is recorded
// when run tracking is enabled.
func ExecutePriorityBoard(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	ranked, err := BuildBoard(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteBoard(ranked, cfg, time.Since(start))
}

// BuildBoard loads, scores and ranks the stored requests.
func BuildBoard(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.RankedRequest, error) {
	requests := mgr.GetRequestStore()
	if requests == nil {
		return nil, ErrNoRequestStore
	}

	status := cfg.Status
	if status == "" {
		status = schema.OpenStatus
	}
	stored, err := requests.ListRequests(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	scored := make([]schema.RankedRequest, len(stored))
	for i, r := range stored {
		scored[i] = algo.ComputeRequestPriority(r, cfg.Priority)
	}
	ranked := algo.RankRequests(scored, 0)

	recordRun(cfg, mgr.GetRunStore(), ranked)

	if cfg.ResultLimit > 0 && len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}
	return ranked, nil
}

// recordRun stores the full scored board. Tracking failures are logged and
// never fail the command.
func recordRun(cfg *contract.Config, runs contract.RunStore, ranked []schema.RankedRequest) {
	if runs == nil {
		return
	}

	configParams := map[string]any{
		"status":                       string(cfg.Status),
		"result_limit":                 cfg.ResultLimit,
		"weight_request_count":         cfg.Priority.WeightRequestCount,
		"weight_size":                  cfg.Priority.WeightSize,
		"size_batch_threshold_gb":      cfg.Priority.SizeBatchThresholdGB,
		"max_request_count_normalizer": cfg.Priority.MaxRequestCountNormalizer,
		"max_size_normalizer_gb":       cfg.Priority.MaxSizeNormalizerGB,
	}
	runID, err := runs.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	if runID <= 0 {
		return
	}

	scoredAt := time.Now()
	for _, r := range ranked {
		if err := runs.RecordScore(runID, scoredAt, r); err != nil {
			contract.LogWarn(fmt.Sprintf("Run tracking failed for request %s", r.RequestID), err)
		}
	}

	if err := runs.EndRun(runID, time.Now(), len(ranked), algo.CountLabels(ranked)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
