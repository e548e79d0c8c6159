package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/reviewlens/core"
	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.SourceClient
	mgr     contract.CacheManager
}

func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project", ""); p != "" {
		cfg.Project = p
	}
	if tf := request.GetString("timeframe", ""); tf != "" {
		timeframe := schema.Timeframe(strings.ToLower(tf))
		if _, ok := schema.ValidTimeframes[timeframe]; !ok {
			return nil, fmt.Errorf("invalid timeframe '%s', must be 7d, 30d, 90d", tf)
		}
		cfg.Timeframe = timeframe
	}
	return cfg, nil
}

func (h *toolHandler) handleGetTeamAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analytics, err := core.NewAnalyzer(cfg, h.client, h.mgr).TeamAnalytics(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(analytics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetEngineerReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := core.NewAnalyzer(cfg, h.client, h.mgr).EngineerReport(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRecommendReviewer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if pool := request.GetString("reviewers", ""); pool != "" {
		cfg.ReviewerPool = nil
		for p := range strings.SplitSeq(pool, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.ReviewerPool = append(cfg.ReviewerPool, trimmed)
			}
		}
	}

	data, err := core.NewAnalyzer(cfg, h.client, h.mgr).Dashboard(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if data.NextReviewer == nil {
		return mcp.NewToolResultError("no eligible reviewer found"), nil
	}

	jsonData, _ := json.MarshalIndent(data.NextReviewer, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
