package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/repocat/core"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.TableManager
}

// requestConfig clones the base config and applies the overrides of one request.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if c := request.GetString("collection", ""); c != "" {
		cfg.Collection = c
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}
	err := contract.RevalidateOverrides(cfg,
		request.GetString("path", ""),
		request.GetString("strategy", ""),
		request.GetString("category", ""),
		request.GetString("as_of", ""),
	)
	return cfg, err
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyProjects(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, err := core.GetClassifyResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichProjects(results))
}

func (h *toolHandler) handleSummarizeCategories(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	result, err := core.GetSummaryResult(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleListCollections(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	infos, err := core.GetCollections(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing collections failed: %v", err)), nil
	}
	return jsonResult(infos)
}

func (h *toolHandler) handleGetThresholds(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	thresholds, err := core.GetThresholds(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("threshold computation failed: %v", err)), nil
	}
	return jsonResult(thresholds)
}
