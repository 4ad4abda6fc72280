// Package commands implements the portfoliorag command line.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	indexFile string
	verbose   bool
)

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfoliorag",
		Short: "Keyword retrieval over a résumé",
		Long: `portfoliorag indexes a single résumé into labeled sections, scores
every section against a question with interpretable keyword vectors, and
assembles the grounded context a chat model answers from.

Build the index once, then search it, inspect it or ask questions:
  portfoliorag build data/documents/cv.txt
  portfoliorag search "expérience React"
  portfoliorag ask "Quels projets as-tu réalisés ?"`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML or TOML config (default: ./config.yaml, ./config.toml, then ~/.config/portfoliorag/config.yaml)")
	cmd.PersistentFlags().StringVar(&indexFile, "index", "", "Path to the index artifact (overrides index.path)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		NewBuildCmd(),
		NewSearchCmd(),
		NewAskCmd(),
		NewInspectCmd(),
		NewStatsCmd(),
		NewSuggestCmd(),
		NewBenchCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
