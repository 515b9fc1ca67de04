package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/madlig/mygameon/core"
	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 8 << 20

// normalizeResponse is the normalized form of one record.
type normalizeResponse struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleNormalizeTags accepts a single record or an array of records.
// Malformed fields degrade to empty values instead of failing.
func (s *Server) handleNormalizeTags(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	if records, ok := body.([]any); ok {
		out := make([]normalizeResponse, len(records))
		for i, r := range records {
			out[i] = s.normalize(asRecord(r))
		}
		return c.JSON(http.StatusOK, out)
	}
	return c.JSON(http.StatusOK, s.normalize(asRecord(body)))
}

func (s *Server) normalize(raw map[string]any) normalizeResponse {
	input := algo.SanitizeTagInput(raw)
	tags := algo.NormalizeTagInput(input)
	s.metrics.ObserveTags(tags)
	return normalizeResponse{Name: input.Name, Tags: tags}
}

func (s *Server) handleTagChips(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}
	raw := asRecord(body)
	input := algo.SanitizeTagInput(raw)

	limit := s.cfg.ChipLimit
	if v, ok := raw["limit"]; ok {
		if l := int(algo.ToNumber(v)); l >= 0 {
			limit = l
		}
	}

	return c.JSON(http.StatusOK, schema.CardResult{
		TagResult: schema.TagResult{
			Name:    input.Name,
			RawTags: input.Tags,
			Genre:   input.Genre,
			Tags:    algo.NormalizeTagInput(input),
		},
		TagChips: algo.BuildTagChips(input.Tags, input.Genre, input.Name, limit),
	})
}

func (s *Server) handleVocabulary(c echo.Context) error {
	return c.JSON(http.StatusOK, core.Vocabulary())
}

// handlePriority scores {requestCount, estimatedSize} with optional per-call
// config overrides under "config".
func (s *Server) handlePriority(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}
	raw := asRecord(body)
	metrics := algo.SanitizeRequestMetrics(raw)

	priority := s.cfg.Priority
	if overrides, ok := raw["config"].(map[string]any); ok {
		priority = algo.ApplyPriorityOverrides(priority, algo.SanitizePriorityOverrides(overrides))
	}

	result := algo.ComputePriority(metrics, priority)
	s.metrics.ObservePriority(result)
	return c.JSON(http.StatusOK, schema.PriorityReport{RequestMetrics: metrics, PriorityResult: result})
}

func (s *Server) handlePriorityConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, s.cfg.Priority)
}

func (s *Server) handleBoard(c echo.Context) error {
	cfg := s.cfg.Clone()
	if v := c.QueryParam("status"); v != "" {
		status := schema.RequestStatus(v)
		if _, ok := schema.ValidRequestStatuses[status]; !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid status %q", v))
		}
		cfg.Status = status
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
		}
		cfg.ResultLimit = min(limit, contract.MaxResultLimit)
	}

	if s.mgr == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, core.ErrNoRequestStore.Error())
	}
	ranked, err := core.BuildBoard(c.Request().Context(), cfg, s.mgr)
	if errors.Is(err, core.ErrNoRequestStore) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		s.logger.Error("board failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build request board").SetInternal(err)
	}

	for _, r := range ranked {
		s.metrics.ObservePriority(r.PriorityResult)
	}
	if ranked == nil {
		ranked = []schema.RankedRequest{}
	}
	return c.JSON(http.StatusOK, ranked)
}

// decodeBody reads a JSON body of any shape. An empty body decodes to nil.
func decodeBody(c echo.Context) (any, error) {
	var body any
	dec := json.NewDecoder(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body must be valid JSON").SetInternal(err)
	}
	return body, nil
}

// asRecord returns v as an object, or nil for any other JSON value.
func asRecord(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
