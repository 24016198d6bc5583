// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/adlens/adlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the AdLens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"AdLens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
		mgr:     mgr,
	}

	// --- 1. Tool: attribution_analysis ---
	s.AddTool(mcp.NewTool("attribution_analysis",
		mcp.WithDescription("Credit conversions to marketing channels using a multi-touch attribution model."),
		mcp.WithString("workspace_path", mcp.Description("Path to the campaign workspace (defaults to the configured workspace if not specified).")),
		mcp.WithString("model", mcp.Description("Attribution model (first_touch, last_touch, linear, time_decay, position_based)."), mcp.Enum("first_touch", "last_touch", "linear", "time_decay", "position_based")),
		mcp.WithBoolean("all_models", mcp.Description("Include a side-by-side run of every attribution model.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleAttributionAnalysis)

	// --- 2. Tool: incrementality_analysis ---
	s.AddTool(mcp.NewTool("incrementality_analysis",
		mcp.WithDescription("Measure incremental lift and statistical significance for every holdout experiment in the workspace."),
		mcp.WithString("workspace_path", mcp.Description("Path to the campaign workspace.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleIncrementalityAnalysis)

	// --- 3. Tool: delivery_risk ---
	s.AddTool(mcp.NewTool("delivery_risk",
		mcp.WithDescription("Score delivery risk for every flight in the workspace, riskiest first."),
		mcp.WithString("workspace_path", mcp.Description("Path to the campaign workspace.")),
		mcp.WithString("anchor", mcp.Description("Analysis anchor time (e.g., '2025-09-10T00:00:00Z' or '3 days ago'). Defaults to now.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleDeliveryRisk)

	// --- 4. Tool: audience_overlap ---
	s.AddTool(mcp.NewTool("audience_overlap",
		mcp.WithDescription("Estimate pairwise audience overlap, deduplicated reach and per-segment performance for the workspace's segment library."),
		mcp.WithString("workspace_path", mcp.Description("Path to the campaign workspace.")),
		mcp.WithString("exclude", mcp.Description("Comma-separated flight or segment IDs to leave out of the scan.")),
	), h.handleAudienceOverlap)

	return s
}

// StartMCPServer starts the AdLens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.WorkspaceSource, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, source, mgr)
	return server.ServeStdio(s)
}
