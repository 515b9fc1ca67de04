// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/madlig/mygameon/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the MyGameON MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"MyGameON Catalog Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: normalize_tags ---
	s.AddTool(mcp.NewTool("normalize_tags",
		mcp.WithDescription("Map free-form game tags, genres and a title onto the canonical tag vocabulary."),
		mcp.WithArray("tags", mcp.Description("Raw tags as entered by curators."), mcp.WithStringItems()),
		mcp.WithArray("genre", mcp.Description("Genres of the game. RPG, sandbox and pixel genres add inferred tags."), mcp.WithStringItems()),
		mcp.WithString("name", mcp.Description("Game title. Remastered and definitive editions are tagged AAA.")),
		mcp.WithNumber("chip_limit", mcp.Description("How many canonical tags a card shows before the overflow counter. Defaults to 2.")),
	), h.handleNormalizeTags)

	// --- 2. Tool: compute_priority ---
	s.AddTool(mcp.NewTool("compute_priority",
		mcp.WithDescription("Score a download request in [0,1] from its demand and size and label it Hot, Normal or Batch Later."),
		mcp.WithNumber("requestCount", mcp.Description("How many users asked for the game.")),
		mcp.WithNumber("estimatedSize", mcp.Description("Estimated download size in GB.")),
		mcp.WithObject("config", mcp.Description("Optional overrides: weightRequestCount, weightSize, sizeBatchThresholdGB, maxRequestCountNormalizer, maxSizeNormalizerGB.")),
	), h.handleComputePriority)

	// --- 3. Tool: get_request_board ---
	s.AddTool(mcp.NewTool("get_request_board",
		mcp.WithDescription("Rank the stored download requests by priority."),
		mcp.WithString("status", mcp.Description("Request status to rank. Defaults to 'open'."), mcp.Enum("open", "fulfilled")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetRequestBoard)

	// --- 4. Tool: get_vocabulary ---
	s.AddTool(mcp.NewTool("get_vocabulary",
		mcp.WithDescription("List the canonical tags in sort order with the patterns that produce them."),
	), h.handleGetVocabulary)

	return s
}

// StartMCPServer starts the MyGameON MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
