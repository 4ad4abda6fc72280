// Package mcp exposes the retrieval engine as Model Context Protocol tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"portfoliorag/internal/domain"
)

// Engine is the retrieval surface the tools call into.
type Engine interface {
	domain.Searcher
	Stats() domain.IndexStats
	Suggestions(limit int) []string
}

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, engine Engine) *Handlers {
	handlers := &Handlers{engine: engine}

	server.AddTool(mcp.Tool{
		Name:        "search_portfolio",
		Description: "Search the indexed résumé and return the ranked passages, a context block ready for a prompt and numbered source citations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question or keywords to search for",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of passages (default: index setting)",
				},
				"min_similarity": map[string]interface{}{
					"type":        "number",
					"description": "Minimum boosted similarity between 0 and 1 (default: index setting)",
				},
				"expand": map[string]interface{}{
					"type":        "boolean",
					"description": "Also search synonym variants of abbreviations such as js or dev",
					"default":     false,
				},
				"no_boost": map[string]interface{}{
					"type":        "boolean",
					"description": "Rank by raw cosine similarity only",
					"default":     false,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchPortfolio)

	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Describe the loaded index: build id, build time, chunk counts per section and document metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	server.AddTool(mcp.Tool{
		Name:        "suggest_questions",
		Description: "Suggest starter questions for the sections present in the index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of suggestions (default: 6)",
					"default":     6,
				},
			},
		},
	}, handlers.SuggestQuestions)

	return handlers
}
