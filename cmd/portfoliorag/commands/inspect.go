package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"portfoliorag/internal/tui"
)

var inspectTopK int

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Browse search results interactively",
		Long: `Open a terminal inspector over the index. Type a query and press Enter,
use up/down to walk the results, Tab to show the assembled context,
ctrl+e to toggle query expansion and ctrl+b to toggle rank boosts.`,
		Args: cobra.NoArgs,
		RunE: runInspect,
	}

	cmd.Flags().IntVar(&inspectTopK, "top-k", 0, "Maximum results (0: index default)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := validateNonNegativeInt(inspectTopK, "top-k"); err != nil {
		return err
	}
	cfg, l, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openEngine(cfg, l)
	if err != nil {
		return err
	}

	stats := engine.Stats()
	summary := fmt.Sprintf("%d document(s), %d chunks, %d dimensions, built %s",
		stats.TotalDocuments, stats.TotalChunks, stats.EmbeddingDimensions, stats.BuildAt.Format("2006-01-02 15:04"))

	m := tui.New(engine, summary, inspectTopK)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
