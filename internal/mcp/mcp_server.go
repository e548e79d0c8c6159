// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/reviewlens/internal/contract"
)

// NewMCPServer initializes and configures the Reviewlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Review Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	// --- 1. Tool: get_team_analytics ---
	s.AddTool(mcp.NewTool("get_team_analytics",
		mcp.WithDescription("Compute team-wide code review metrics for a project: merge latency, review phases, size and reviewer distributions, weekly trends."),
		mcp.WithString("project", mcp.Description("Project path or numeric ID (defaults to the configured project).")),
		mcp.WithString("timeframe", mcp.Description("Analysis lookback window. Defaults to '30d'."), mcp.Enum("7d", "30d", "90d")),
	), h.handleGetTeamAnalytics)

	// --- 2. Tool: get_engineer_report ---
	s.AddTool(mcp.NewTool("get_engineer_report",
		mcp.WithDescription("Compute one engineer's review activity: authored/reviewed changes, comment quality analysis, response-time behavior."),
		mcp.WithString("username", mcp.Description("The engineer's username."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Project path or numeric ID.")),
		mcp.WithString("timeframe", mcp.Description("Analysis lookback window."), mcp.Enum("7d", "30d", "90d")),
	), h.handleGetEngineerReport)

	// --- 3. Tool: recommend_reviewer ---
	s.AddTool(mcp.NewTool("recommend_reviewer",
		mcp.WithDescription("Recommend the least-loaded reviewer based on current open merge request workload."),
		mcp.WithString("project", mcp.Description("Project path or numeric ID.")),
		mcp.WithString("reviewers", mcp.Description("Comma-separated allow list of candidate usernames.")),
	), h.handleRecommendReviewer)

	return s
}

// StartMCPServer starts the Reviewlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.SourceClient, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, client, mgr)
	return server.ServeStdio(s)
}
