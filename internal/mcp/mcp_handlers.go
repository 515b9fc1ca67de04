package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/madlig/mygameon/core"
	"github.com/madlig/mygameon/core/algo"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleNormalizeTags(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := algo.SanitizeTagInput(request.GetArguments())

	limit := h.baseCfg.ChipLimit
	if l := request.GetInt("chip_limit", -1); l >= 0 {
		limit = l
	}

	card := schema.CardResult{
		TagResult: schema.TagResult{
			Name:    input.Name,
			RawTags: input.Tags,
			Genre:   input.Genre,
			Tags:    algo.NormalizeTagInput(input),
		},
		TagChips: algo.BuildTagChips(input.Tags, input.Genre, input.Name, limit),
	}
	return jsonResult(card)
}

func (h *toolHandler) handleComputePriority(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	metrics := algo.SanitizeRequestMetrics(args)

	priority := h.baseCfg.Priority
	if raw, ok := args["config"]; ok && raw != nil {
		overrides, ok := raw.(map[string]any)
		if !ok {
			return mcp.NewToolResultError("config must be an object"), nil
		}
		priority = algo.ApplyPriorityOverrides(priority, algo.SanitizePriorityOverrides(overrides))
	}

	return jsonResult(schema.PriorityReport{
		RequestMetrics: metrics,
		PriorityResult: algo.ComputePriority(metrics, priority),
	})
}

func (h *toolHandler) handleGetRequestBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("status", ""); s != "" {
		status := schema.RequestStatus(s)
		if _, ok := schema.ValidRequestStatuses[status]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid status %q: must be open or fulfilled", s)), nil
		}
		cfg.Status = status
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}

	if h.mgr == nil {
		return mcp.NewToolResultError(core.ErrNoRequestStore.Error()), nil
	}
	ranked, err := core.BuildBoard(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("board failed: %v", err)), nil
	}
	if ranked == nil {
		ranked = []schema.RankedRequest{}
	}
	return jsonResult(ranked)
}

func (h *toolHandler) handleGetVocabulary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(core.Vocabulary())
}

// jsonResult renders v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
