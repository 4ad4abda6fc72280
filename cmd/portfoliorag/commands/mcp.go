package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"portfoliorag/internal/mcp"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Serve the index over the Model Context Protocol on stdio, exposing the
search_portfolio, index_stats and suggest_questions tools.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
		Example: `  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "portfoliorag": {
  #       "command": "portfoliorag",
  #       "args": ["--index", "/path/to/index.json", "mcp"]
  #     }
  #   }
  # }`,
	}
	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer("portfoliorag", versionInfo.Version, mcpserver.WithToolCapabilities(false))
	mcp.RegisterTools(server, engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("MCP server starting on stdio", "chunks", engine.Stats().TotalChunks)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		l.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	return nil
}
