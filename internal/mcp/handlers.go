package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"portfoliorag/internal/domain"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	engine Engine
}

// SearchPortfolio handles the search_portfolio tool.
func (h *Handlers) SearchPortfolio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	opts := domain.SearchOptions{
		TopK:    request.GetInt("top_k", 0),
		NoBoost: request.GetBool("no_boost", false),
	}
	if threshold := request.GetFloat("min_similarity", -1); threshold >= 0 {
		opts.MinSimilarity = domain.Threshold(threshold)
	}

	var response any
	if request.GetBool("expand", false) {
		response, err = h.engine.SearchWithExpansion(query, opts)
	} else {
		response, err = h.engine.Search(query, opts)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(response)
}

// IndexStats handles the index_stats tool.
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.engine.Stats())
}

// SuggestQuestions handles the suggest_questions tool.
func (h *Handlers) SuggestQuestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 6)
	return jsonResult(map[string]any{"suggestions": h.engine.Suggestions(limit)})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
