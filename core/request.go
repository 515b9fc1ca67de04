package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// requestNamespace seeds request IDs so that the same title always maps to one request.
var requestNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://mygameon.app/requests"))

// RequestID returns the deterministic request ID for a title.
func RequestID(title string) string {
	return uuid.NewSHA1(requestNamespace, []byte(strings.ToLower(strings.TrimSpace(title)))).String()
}

// ExecuteRequestAdd records a download request for --title and prints its priority.
// Without --count the stored count is incremented by one.
func ExecuteRequestAdd(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w contract.ResultWriter) error {
	start := time.Now()
	if err := validateRequestInputs(cfg.RequestCount, cfg.EstimatedSize); err != nil {
		return err
	}
	stored, err := AddRequest(ctx, mgr, schema.GameRequest{
		Title:           cfg.Title,
		RequestCount:    int(cfg.RequestCount),
		EstimatedSizeGB: cfg.EstimatedSize,
		Status:          cfg.Status,
	})
	if err != nil {
		return err
	}
	ranked := algo.ComputeRequestPriority(stored, cfg.Priority)
	return w.WriteBoard([]schema.RankedRequest{ranked}, cfg, time.Since(start))
}

// AddRequest upserts req keyed by its title.
func AddRequest(ctx context.Context, mgr contract.StoreManager, req schema.GameRequest) (schema.GameRequest, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return schema.GameRequest{}, errors.New("--title is required")
	}
	if err := validateRequestInputs(float64(req.RequestCount), req.EstimatedSizeGB); err != nil {
		return schema.GameRequest{}, err
	}
	requests := mgr.GetRequestStore()
	if requests == nil {
		return schema.GameRequest{}, ErrNoRequestStore
	}
	req.RequestID = RequestID(req.Title)

	stored, err := requests.UpsertRequest(ctx, req)
	if err != nil {
		return schema.GameRequest{}, fmt.Errorf("failed to store request %q: %w", req.Title, err)
	}
	return stored, nil
}

// validateRequestInputs rejects negative stored values. Scoring alone
// coerces them instead.
func validateRequestInputs(count, size float64) error {
	if count < 0 {
		return fmt.Errorf("count cannot be negative (received %g)", count)
	}
	if size < 0 {
		return fmt.Errorf("size cannot be negative (received %g)", size)
	}
	return nil
}
