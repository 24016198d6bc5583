package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adlens/adlens/core"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.WorkspaceSource
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAttributionAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("workspace_path", ""); p != "" {
		cfg.WorkspacePath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	cfg.AllModels = request.GetBool("all_models", cfg.AllModels)

	if err := contract.RevalidateModel(cfg, request.GetString("model", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid attribution parameters: %v", err)), nil
	}

	report, _, err := core.GetAttributionResults(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleIncrementalityAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("workspace_path", ""); p != "" {
		cfg.WorkspacePath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	results, _, err := core.GetLiftResults(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(&schema.LiftReport{Results: results}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDeliveryRisk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	anchorStr := request.GetString("anchor", "")
	if p := request.GetString("workspace_path", ""); p != "" {
		cfg.WorkspacePath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	// Re-validate specifically for anchor time parsing
	if err := contract.RevalidateAnchor(cfg, anchorStr); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid risk parameters: %v", err)), nil
	}

	ranked, _, err := core.GetRiskResults(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	enriched := schema.EnrichRiskResults(ranked)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAudienceOverlap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("workspace_path", ""); p != "" {
		cfg.WorkspacePath = p
	}
	if ex := request.GetString("exclude", ""); ex != "" {
		cfg.Excludes = nil
		for part := range strings.SplitSeq(ex, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	report, _, err := core.GetOverlapResults(core.WithSuppressHeader(ctx), cfg, h.source, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
