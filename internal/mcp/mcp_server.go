// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var strategyEnum = mcp.Enum("standard", "scaled", "median")

// NewMCPServer initializes and configures the repocat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.TableManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repocat Classification Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: classify_projects ---
	s.AddTool(mcp.NewTool("classify_projects",
		mcp.WithDescription("Label each project of a metrics table with a popularity and activity category."),
		mcp.WithString("path", mcp.Description("Path to a .csv or .parquet metrics table (defaults to the configured table store).")),
		mcp.WithString("collection", mcp.Description("Only classify projects of this collection.")),
		mcp.WithString("strategy", mcp.Description("Classification strategy. Defaults to 'standard'."), strategyEnum),
		mcp.WithString("category", mcp.Description("Only return projects with this label.")),
		mcp.WithString("as_of", mcp.Description("Instant day counts are measured from (RFC3339, YYYY-MM-DD or 'N days ago').")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleClassifyProjects)

	// --- 2. Tool: summarize_categories ---
	s.AddTool(mcp.NewTool("summarize_categories",
		mcp.WithDescription("Count projects per category in display order, plus projects without a label."),
		mcp.WithString("path", mcp.Description("Path to a .csv or .parquet metrics table.")),
		mcp.WithString("collection", mcp.Description("Only count projects of this collection.")),
		mcp.WithString("strategy", mcp.Description("Classification strategy."), strategyEnum),
		mcp.WithString("as_of", mcp.Description("Instant day counts are measured from.")),
	), h.handleSummarizeCategories)

	// --- 3. Tool: list_collections ---
	s.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("List the collections of a metrics table with their project counts."),
		mcp.WithString("path", mcp.Description("Path to a .csv or .parquet metrics table.")),
	), h.handleListCollections)

	// --- 4. Tool: get_thresholds ---
	s.AddTool(mcp.NewTool("get_thresholds",
		mcp.WithDescription("Compute the medians the median strategy compares each project against."),
		mcp.WithString("path", mcp.Description("Path to a .csv or .parquet metrics table.")),
		mcp.WithString("collection", mcp.Description("Compute medians over this collection only.")),
	), h.handleGetThresholds)

	return s
}

// StartMCPServer starts the repocat MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.TableManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
